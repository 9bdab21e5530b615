//go:build integration

package e2e

// End-to-end integration tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests exercise behavior that only a real Postgres can show: the
// precio_compra audit trigger, FK delete actions, the CHECK constraint on
// usuarios.role and the atomicity of the bulk seeder.

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"bodega/internal/config"
	"bodega/internal/infra"
	"bodega/internal/model"
	"bodega/internal/router"
	"bodega/internal/seeder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server     *httptest.Server
	db         *gorm.DB
	tokenAdmin string
	tokenUser  string
}

func login(t *testing.T, srv *httptest.Server, username, password string) (string, int) {
	t.Helper()
	resp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": username, "password": password}), "")
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return "", resp.StatusCode
	}
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	return body.AccessToken, http.StatusOK
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("bodega_test"),
		tcPostgres.WithUsername("bodega"),
		tcPostgres.WithPassword("bodega"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		OllamaURL:          "http://127.0.0.1:1", // nothing listens here
		OllamaModel:        "phi3",
	}

	// Migrations, CHECK constraint and the audit trigger are installed here.
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, seeder.EnsureDefaultAccounts(ctx, db))

	r := router.New(cfg, db, rdb, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	tokenAdmin, code := login(t, srv, "admin", "admin123")
	require.Equal(t, http.StatusOK, code)
	tokenUser, code := login(t, srv, "operador", "user123")
	require.Equal(t, http.StatusOK, code)

	return &testEnv{server: srv, db: db, tokenAdmin: tokenAdmin, tokenUser: tokenUser}
}

func (env *testEnv) crearProducto(t *testing.T, nombre, sku string, precio int64) uint {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre":        nombre,
			"sku":           sku,
			"precio_compra": decimal.NewFromInt(precio),
		}), env.tokenAdmin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID uint `json:"id_prod"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

func (env *testEnv) historialCount(t *testing.T, productoID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(&model.HistorialPrecio{}).
		Where("id_producto = ?", productoID).Count(&n).Error)
	return n
}

// ── Tests ────────────────────────────────────────────────────────────────────

// The audit trigger writes exactly one history row per effective price change,
// and nothing for inserts, stock updates or restated prices.
func TestE2E_TriggerAuditoriaPrecios(t *testing.T) {
	env := setupTestEnv(t)
	id := env.crearProducto(t, "Monitor 24' LED", "MON24-001", 120000)

	// Insert is not a price change.
	assert.EqualValues(t, 0, env.historialCount(t, id))

	// Stock-only update never reaches the audit trail.
	resp := do(t, env.server, "PATCH", "/v1/productos/"+itoa(id)+"/stock",
		jsonBody(t, map[string]any{"stock_actual": 30}), env.tokenAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.EqualValues(t, 0, env.historialCount(t, id))

	// Effective price change: exactly one row, carrying the new value.
	resp = do(t, env.server, "PATCH", "/v1/productos/"+itoa(id)+"/precio",
		jsonBody(t, map[string]any{"precio_compra": decimal.NewFromInt(125000)}), env.tokenAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.EqualValues(t, 1, env.historialCount(t, id))

	var h model.HistorialPrecio
	require.NoError(t, env.db.Where("id_producto = ?", id).First(&h).Error)
	assert.True(t, h.PrecioRegistrado.Equal(decimal.NewFromInt(125000)))
	assert.False(t, h.Fecha.IsZero())

	// Restating the same price is filtered by the trigger's WHEN clause.
	resp = do(t, env.server, "PATCH", "/v1/productos/"+itoa(id)+"/precio",
		jsonBody(t, map[string]any{"precio_compra": decimal.NewFromInt(125000)}), env.tokenAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.EqualValues(t, 1, env.historialCount(t, id))

	// The facade exposes the same trail, newest first.
	resp = do(t, env.server, "GET", "/v1/productos/"+itoa(id)+"/historial", nil, env.tokenAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var hist struct {
		Total int `json:"total"`
	}
	decodeJSON(t, resp, &hist)
	assert.Equal(t, 1, hist.Total)
}

// Deleting a product cascades its own history rows and nothing else.
func TestE2E_EliminarProductoCascada(t *testing.T) {
	env := setupTestEnv(t)
	id1 := env.crearProducto(t, "Mouse Gamer G502", "MS-G502", 35000)
	id2 := env.crearProducto(t, "Hub USB-C 7 en 1", "HUB-71", 28000)

	for _, precio := range []int64{36000, 37000} {
		resp := do(t, env.server, "PATCH", "/v1/productos/"+itoa(id1)+"/precio",
			jsonBody(t, map[string]any{"precio_compra": decimal.NewFromInt(precio)}), env.tokenAdmin)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	resp := do(t, env.server, "PATCH", "/v1/productos/"+itoa(id2)+"/precio",
		jsonBody(t, map[string]any{"precio_compra": decimal.NewFromInt(29000)}), env.tokenAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "DELETE", "/v1/productos/"+itoa(id1), nil, env.tokenAdmin)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	assert.EqualValues(t, 0, env.historialCount(t, id1))
	assert.EqualValues(t, 1, env.historialCount(t, id2), "unrelated history survives")
}

// Deleting a supplier orphans its products (SET NULL) without deleting them.
func TestE2E_EliminarProveedorSetNull(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/proveedores",
		jsonBody(t, map[string]any{"nombre": "TecnoChile", "email": "ventas@tecnochile.cl"}), env.tokenAdmin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prov struct {
		ID uint `json:"id_prov"`
	}
	decodeJSON(t, resp, &prov)

	resp = do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre": "Monitor 24' LED", "sku": "MON24-001",
			"precio_compra": decimal.NewFromInt(120000),
			"id_proveedor":  prov.ID,
		}), env.tokenAdmin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID uint `json:"id_prod"`
	}
	decodeJSON(t, resp, &prod)

	resp = do(t, env.server, "DELETE", "/v1/proveedores/"+itoa(prov.ID), nil, env.tokenAdmin)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var p model.Producto
	require.NoError(t, env.db.First(&p, prod.ID).Error)
	assert.Nil(t, p.ProveedorID)

	// The inventory join lists the orphan with a NULL supplier.
	resp = do(t, env.server, "GET", "/v1/inventario", nil, env.tokenAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inv struct {
		Data []struct {
			Nombre    string  `json:"nombre"`
			Proveedor *string `json:"proveedor"`
		} `json:"data"`
		Total int `json:"total"`
	}
	decodeJSON(t, resp, &inv)
	require.Equal(t, 1, inv.Total)
	assert.Nil(t, inv.Data[0].Proveedor)
}

// A duplicate sku is rejected with 409 and leaves the table untouched.
func TestE2E_SKUDuplicado(t *testing.T) {
	env := setupTestEnv(t)
	env.crearProducto(t, "Monitor 24' LED", "MON24-001", 120000)
	antes := countRows(t, env.db, "productos")

	resp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre": "Otro Monitor", "sku": "MON24-001",
			"precio_compra": decimal.NewFromInt(99000),
		}), env.tokenAdmin)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, antes, countRows(t, env.db, "productos"))
}

// Seed is all-or-nothing: a batch with a dangling FK reference rolls back
// completely, and a valid batch replaces previous contents with exact ids.
func TestE2E_SeedAtomico(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	s := seeder.New(env.db)

	require.NoError(t, s.Seed(ctx, seeder.DemoDataset()))
	assert.EqualValues(t, 2, countRows(t, env.db, "proveedores"))
	assert.EqualValues(t, 6, countRows(t, env.db, "productos"))
	assert.EqualValues(t, 3, countRows(t, env.db, "historial_precios"))

	// Products keep their explicit ids so in-batch FKs resolve.
	var monitor model.Producto
	require.NoError(t, env.db.First(&monitor, 1).Error)
	assert.Equal(t, "Monitor 24' LED", monitor.Nombre)

	// Broken batch: historial row pointing at a product the batch never
	// inserts. Nothing from it may persist, and the previous seed is gone too
	// (the wipe and the load are one transaction).
	malo := seeder.DemoDataset()
	malo.Historial = append(malo.Historial, model.HistorialPrecio{
		ProductoID:       999,
		PrecioRegistrado: decimal.NewFromInt(1),
	})
	require.Error(t, s.Seed(ctx, malo))
	assert.EqualValues(t, 2, countRows(t, env.db, "proveedores"), "rollback restores previous contents")
	assert.EqualValues(t, 6, countRows(t, env.db, "productos"))
	assert.EqualValues(t, 3, countRows(t, env.db, "historial_precios"))

	// Reseeding after the failure works and sequences continue past the
	// highest seeded id.
	require.NoError(t, s.Seed(ctx, seeder.DemoDataset()))
	nuevo := env.crearProducto(t, "Webcam Full HD", "CAM-FHD-01", 22000)
	assert.Greater(t, nuevo, uint(6))
}

// The master accounts are created once; reruns and reseeds leave them alone.
func TestE2E_CuentasMaestrasIdempotentes(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	require.NoError(t, seeder.EnsureDefaultAccounts(ctx, env.db))
	require.NoError(t, seeder.EnsureDefaultAccounts(ctx, env.db))
	assert.EqualValues(t, 2, countRows(t, env.db, "usuarios"))

	require.NoError(t, seeder.New(env.db).Seed(ctx, seeder.DemoDataset()))
	assert.EqualValues(t, 2, countRows(t, env.db, "usuarios"), "accounts survive a reseed")
}

// The CHECK constraint rejects roles outside ADMIN/USER at the storage layer.
func TestE2E_RoleCheckConstraint(t *testing.T) {
	env := setupTestEnv(t)
	err := env.db.Exec(
		`INSERT INTO usuarios (username, password, role) VALUES ('intruso', 'x', 'SUPERVISOR')`,
	).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chk_usuarios_role")
}

// Wrong password and unknown username produce the same 401; a valid login
// returns the role and records last_login.
func TestE2E_Login(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "admin123"}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ADMIN", body.Role)
	assert.NotEmpty(t, body.AccessToken)

	var u model.Usuario
	require.NoError(t, env.db.Where("username = ?", "admin").First(&u).Error)
	assert.NotNil(t, u.LastLogin)

	_, code := login(t, env.server, "admin", "incorrecta")
	assert.Equal(t, http.StatusUnauthorized, code)
	_, code = login(t, env.server, "fantasma", "admin123")
	assert.Equal(t, http.StatusUnauthorized, code)
}

// USER reads the inventory but every write is refused before touching storage.
func TestE2E_RolUserSoloLectura(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/inventario", nil, env.tokenUser)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre": "Monitor", "sku": "MON24-001",
			"precio_compra": decimal.NewFromInt(120000),
		}), env.tokenUser)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	assert.EqualValues(t, 0, countRows(t, env.db, "productos"))

	resp = do(t, env.server, "GET", "/v1/inventario", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// With no model server listening the consultation fails as 502 and storage
// state is untouched.
func TestE2E_ConsultaIAColaboradorCaido(t *testing.T) {
	env := setupTestEnv(t)
	env.crearProducto(t, "Monitor 24' LED", "MON24-001", 120000)
	antes := countRows(t, env.db, "historial_precios")

	resp := do(t, env.server, "POST", "/v1/ia/consulta",
		jsonBody(t, map[string]any{"pregunta": "Que productos debo reponer?"}), env.tokenAdmin)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, antes, countRows(t, env.db, "historial_precios"))
	assert.EqualValues(t, 1, countRows(t, env.db, "productos"))
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
