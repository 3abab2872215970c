package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/poxpos/internal/config"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway/rest"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/correlationid"
)

type captured struct {
	method string
	path   string
	query  string
	header http.Header
	body   map[string]any
}

func newServer(t *testing.T, status int, response string) (*rest.Client, *captured) {
	t.Helper()

	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.query = r.URL.RawQuery
		c.header = r.Header.Clone()

		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			_ = json.Unmarshal(b, &c.body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	client, err := rest.New(config.Gateway{
		URL:            srv.URL + "/",
		AnonKey:        "anon-key",
		ServiceRoleKey: "service-key",
		Timeout:        2 * time.Second,
	})
	require.NoError(t, err)

	return client, c
}

func TestNew(t *testing.T) {
	_, err := rest.New(config.Gateway{URL: "not a url"})
	assert.Error(t, err)
}

func TestCall(t *testing.T) {
	t.Run("Should post named arguments with the caller token", func(t *testing.T) {
		client, c := newServer(t, http.StatusOK, `[{"sale_id":"s1","receipt_no":"R-0001"}]`)

		ctx := correlationid.NewContext(context.Background(), "corr-1")
		raw, err := client.Call(ctx, "user-token", gateway.ProcManualSale, map[string]any{
			"p_items":     []map[string]any{{"product_id": "p1", "quantity": 2}},
			"p_branch_id": nil,
		})
		require.NoError(t, err)

		assert.JSONEq(t, `[{"sale_id":"s1","receipt_no":"R-0001"}]`, string(raw))
		assert.Equal(t, http.MethodPost, c.method)
		assert.Equal(t, "/rest/v1/rpc/manual_sale", c.path)
		assert.Equal(t, "anon-key", c.header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", c.header.Get("Authorization"))
		assert.Equal(t, "corr-1", c.header.Get(correlationid.Header))
		assert.Contains(t, c.body, "p_branch_id")
		assert.Nil(t, c.body["p_branch_id"])
	})

	t.Run("Should surface procedure error message", func(t *testing.T) {
		client, _ := newServer(t, http.StatusBadRequest,
			`{"code":"P0001","message":"Not allowed","details":null,"hint":null}`)

		_, err := client.Call(context.Background(), "user-token", gateway.ProcStockAdjust, nil)
		require.Error(t, err)

		var gwErr *gateway.Error
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, "Not allowed", gwErr.Message)
		assert.Equal(t, "P0001", gwErr.Code)
		assert.Equal(t, http.StatusBadRequest, gwErr.Status)
	})

	t.Run("Should report unreadable server failures as unavailable", func(t *testing.T) {
		client, _ := newServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)

		_, err := client.Call(context.Background(), "user-token", gateway.ProcCheckoutSale, nil)
		assert.ErrorIs(t, err, gateway.ErrUnavailable)
	})

	t.Run("Should report connection failures as unavailable", func(t *testing.T) {
		client, err := rest.New(config.Gateway{URL: "http://127.0.0.1:1", Timeout: time.Second})
		require.NoError(t, err)

		_, err = client.Call(context.Background(), "user-token", gateway.ProcCheckoutSale, nil)
		assert.ErrorIs(t, err, gateway.ErrUnavailable)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("Should verify token against auth server", func(t *testing.T) {
		client, c := newServer(t, http.StatusOK, `{"id":"u1","email":"a@b.c","aud":"authenticated"}`)

		user, err := client.GetUser(context.Background(), "user-token")
		require.NoError(t, err)
		assert.Equal(t, model.User{ID: "u1", Email: "a@b.c"}, user)
		assert.Equal(t, "/auth/v1/user", c.path)
		assert.Equal(t, "Bearer user-token", c.header.Get("Authorization"))
		assert.Equal(t, "anon-key", c.header.Get("apikey"))
	})

	t.Run("Should reject invalid session", func(t *testing.T) {
		client, _ := newServer(t, http.StatusUnauthorized, `{"code":401,"msg":"invalid JWT"}`)

		_, err := client.GetUser(context.Background(), "bad")
		var gwErr *gateway.Error
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, "invalid JWT", gwErr.Message)
		assert.Equal(t, "401", gwErr.Code)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("Should select one profile with the service key", func(t *testing.T) {
		client, c := newServer(t, http.StatusOK, `{"user_id":"u1","role":"manager","full_name":"Mwila"}`)

		profile, err := client.GetProfile(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, model.RoleManager, profile.Role)
		assert.Equal(t, "/rest/v1/profiles", c.path)
		assert.Contains(t, c.query, "user_id=eq.u1")
		assert.Equal(t, "Bearer service-key", c.header.Get("Authorization"))
		assert.Equal(t, "application/vnd.pgrst.object+json", c.header.Get("Accept"))
	})

	t.Run("Should map missing row to not found", func(t *testing.T) {
		client, _ := newServer(t, http.StatusNotAcceptable,
			`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`)

		_, err := client.GetProfile(context.Background(), "u1")
		assert.ErrorIs(t, err, gateway.ErrNotFound)
	})
}

func TestTable(t *testing.T) {
	t.Run("Should insert and return id", func(t *testing.T) {
		client, c := newServer(t, http.StatusCreated, `{"id":"b-new"}`)

		id, err := client.Insert(context.Background(), model.TableBranches, map[string]any{"name": "Main", "is_default": true})
		require.NoError(t, err)
		assert.Equal(t, "b-new", id)
		assert.Equal(t, http.MethodPost, c.method)
		assert.Equal(t, "/rest/v1/branches", c.path)
		assert.Equal(t, "return=representation", c.header.Get("Prefer"))
		assert.Equal(t, map[string]any{"name": "Main", "is_default": true}, c.body)
	})

	t.Run("Should patch with equality filter", func(t *testing.T) {
		client, c := newServer(t, http.StatusNoContent, ``)

		err := client.Update(context.Background(), model.TableBranches,
			map[string]any{"is_default": false}, gateway.Filter{"is_default": true})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPatch, c.method)
		assert.Equal(t, "is_default=eq.true", c.query)
	})

	t.Run("Should delete with equality filter", func(t *testing.T) {
		client, c := newServer(t, http.StatusNoContent, ``)

		err := client.Delete(context.Background(), model.TableSuppliers, gateway.Filter{"id": "s1"})
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, c.method)
		assert.Equal(t, "/rest/v1/suppliers", c.path)
		assert.Equal(t, "id=eq.s1", c.query)
	})

	t.Run("Should refuse unfiltered writes", func(t *testing.T) {
		client, c := newServer(t, http.StatusNoContent, ``)

		assert.Error(t, client.Update(context.Background(), model.TableBranches, map[string]any{"is_default": false}, nil))
		assert.Error(t, client.Delete(context.Background(), model.TableSuppliers, gateway.Filter{}))
		assert.Empty(t, c.method)
	})
}

func TestPing(t *testing.T) {
	client, c := newServer(t, http.StatusOK, `{"name":"GoTrue"}`)

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "/auth/v1/health", c.path)
}
