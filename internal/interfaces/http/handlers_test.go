package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocky-api/internal/application/auth"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/bootstrap"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stocky-api/internal/interfaces/http"
	"github.com/jhoicas/stocky-api/pkg/config"
	pkgjwt "github.com/jhoicas/stocky-api/pkg/jwt"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor completo sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID       = "10000000-0000-0000-0000-000000000001"
	storekeeperID = "10000000-0000-0000-0000-000000000002"
	buyerID       = "10000000-0000-0000-0000-000000000003"
	viewerID      = "10000000-0000-0000-0000-000000000004"
	employeeID    = "10000000-0000-0000-0000-000000000005"
	adminPassword = "admin-password-123"
)

type testServer struct {
	t     *testing.T
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()

	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)
	now := time.Now().UTC()
	store.PutUser(entity.User{ID: adminID, DisplayName: "Ana Admin", Email: "admin@stocky.test", Role: entity.RoleAdmin, PasswordHash: hash, CreatedAt: now})
	store.PutUser(entity.User{ID: storekeeperID, DisplayName: "Sergio Almacén", Email: "almacen@stocky.test", Role: entity.RoleStorekeeper, CreatedAt: now})
	store.PutUser(entity.User{ID: buyerID, DisplayName: "Berta Compras", Email: "compras@stocky.test", Role: entity.RoleBuyer, CreatedAt: now})
	store.PutUser(entity.User{ID: viewerID, DisplayName: "Vera Lectora", Email: "lectura@stocky.test", Role: entity.RoleViewer, CreatedAt: now})
	store.PutUser(entity.User{ID: employeeID, DisplayName: "Eva Empleada", Email: "eva@stocky.test", Department: "IT", Role: entity.RoleViewer, CreatedAt: now})

	cfg := &config.Config{
		App:       config.AppConfig{Name: "stocky-test"},
		JWT:       config.JWTConfig{Secret: testJWTSecret, Expiration: testExpMin, Issuer: testIssuer},
		Inventory: config.InventoryConfig{DefaultWarrantyDays: 365, WarrantyHorizonDays: 90, RecentAssignmentsLimit: 10},
		Files:     config.FilesConfig{MaxUploadMB: 1},
	}
	deps := bootstrap.RouterDeps(bootstrap.Backend{
		Tx:      store,
		Repos:   store.Repositories(),
		Reports: store.Reports(),
	}, cfg, logger.Nop())
	app := apphttp.NewServer(bootstrap.ServerConfig(cfg), deps)
	return &testServer{t: t, app: app, store: store}
}

func (s *testServer) token(userID, role string) string {
	s.t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(s.t, err)
	return "Bearer " + tok
}

func (s *testServer) do(method, path, authHeader string, body any) *http.Response {
	s.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *testServer) expect(resp *http.Response, status int) *http.Response {
	s.t.Helper()
	if resp.StatusCode != status {
		body, _ := io.ReadAll(resp.Body)
		s.t.Fatalf("status %d, se esperaba %d: %s", resp.StatusCode, status, body)
	}
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.expect(s.do(http.MethodGet, "/health", "", nil), http.StatusOK)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestLogin_CredencialesValidasEInvalidas(t *testing.T) {
	s := newTestServer(t)

	resp := s.expect(s.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "ADMIN@stocky.test", Password: adminPassword,
	}), http.StatusOK)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, adminID, login.User.ID)

	me := s.expect(s.do(http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil), http.StatusOK)
	assert.Equal(t, "admin", decode[dto.UserResponse](t, me).Role)

	bad := s.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@stocky.test", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)

	invalid := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, invalid.StatusCode)
}

func TestUsuarios_SoloPersonalConRol(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct {
		id, role string
	}{
		{adminID, entity.RoleAdmin},
		{buyerID, entity.RoleBuyer},
		{storekeeperID, entity.RoleStorekeeper},
	} {
		users := decode[[]dto.UserResponse](t, s.expect(s.do(http.MethodGet, "/api/users", s.token(tc.id, tc.role), nil), http.StatusOK))
		assert.Len(t, users, 5, tc.role)
	}

	viewer := s.token(viewerID, entity.RoleViewer)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/users", viewer, nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/users/"+employeeID, viewer, nil).StatusCode)

	// /auth/me sigue abierto a cualquier rol
	me := s.expect(s.do(http.MethodGet, "/api/auth/me", viewer, nil), http.StatusOK)
	assert.Equal(t, viewerID, decode[dto.UserResponse](t, me).ID)
}

func TestCicloCompleto_OrdenRecepcionAsignacionDevolucion(t *testing.T) {
	s := newTestServer(t)
	buyer := s.token(buyerID, entity.RoleBuyer)
	keeper := s.token(storekeeperID, entity.RoleStorekeeper)
	viewer := s.token(viewerID, entity.RoleViewer)

	// Proveedor y artículo
	sup := decode[dto.SupplierResponse](t, s.expect(s.do(http.MethodPost, "/api/suppliers", buyer,
		dto.CreateSupplierRequest{Name: "Dell"}), http.StatusCreated))
	item := decode[dto.ItemResponse](t, s.expect(s.do(http.MethodPost, "/api/items", keeper,
		dto.CreateItemRequest{Name: "Latitude 5440", Category: "laptop", DefaultSupplierID: sup.ID}), http.StatusCreated))
	assert.Equal(t, 0, item.Stock)

	// Orden y su ciclo de estados
	order := decode[dto.OrderResponse](t, s.expect(s.do(http.MethodPost, "/api/orders", buyer, dto.CreateOrderRequest{
		SupplierID: sup.ID,
		Lines:      []dto.OrderLineRequest{{ItemID: item.ID, Qty: 2}},
	}), http.StatusCreated))
	assert.Equal(t, "requested", order.Status)
	assert.Equal(t, sup.ID, order.Supplier.ID)

	next := decode[map[string][]string](t, s.expect(s.do(http.MethodGet, "/api/orders/"+order.ID+"/next-statuses", viewer, nil), http.StatusOK))
	assert.Equal(t, []string{"internal_approval"}, next["statuses"])

	skip := s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", buyer, dto.UpdateOrderStatusRequest{Status: "delivered"})
	assert.Equal(t, http.StatusUnprocessableEntity, skip.StatusCode)

	for _, st := range []string{"internal_approval", "sent_to_supplier"} {
		s.expect(s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", buyer, dto.UpdateOrderStatusRequest{Status: st}), http.StatusOK)
	}

	// Recepción con dos seriales
	warranty := 730
	received := decode[dto.OrderResponse](t, s.expect(s.do(http.MethodPost, "/api/orders/"+order.ID+"/deliveries", keeper, dto.RegisterDeliveryRequest{
		DeliveryNoteRef:      "ALB-1",
		SerialNumbers:        []string{"SN-1", "SN-2"},
		ItemID:               item.ID,
		WarrantyDurationDays: &warranty,
	}), http.StatusCreated))
	require.Len(t, received.Deliveries, 1)
	assert.Equal(t, "sent_to_supplier", received.Status)

	delivered := decode[dto.OrderResponse](t, s.expect(s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", buyer,
		dto.UpdateOrderStatusRequest{Status: "delivered"}), http.StatusOK))
	assert.Equal(t, "delivered", delivered.Status)

	back := s.do(http.MethodPatch, "/api/orders/"+order.ID+"/status", buyer, dto.UpdateOrderStatusRequest{Status: "requested"})
	assert.Equal(t, http.StatusUnprocessableEntity, back.StatusCode)

	// Número de serie repetido en otra recepción → 409
	dup := s.do(http.MethodPost, "/api/orders/"+order.ID+"/deliveries", keeper, dto.RegisterDeliveryRequest{
		SerialNumbers: []string{"SN-1"}, ItemID: item.ID,
	})
	assert.Equal(t, http.StatusConflict, dup.StatusCode)

	got := decode[dto.ItemResponse](t, s.expect(s.do(http.MethodGet, "/api/items/"+item.ID, viewer, nil), http.StatusOK))
	assert.Equal(t, 2, got.Stock)

	serials := decode[[]dto.SerialResponse](t, s.expect(s.do(http.MethodGet, "/api/serials?status=in_stock&item_id="+item.ID, viewer, nil), http.StatusOK))
	require.Len(t, serials, 2)
	assert.Equal(t, "SN-1", serials[0].SerialNumber)
	require.NotNil(t, serials[0].WarrantyStart)
	require.NotNil(t, serials[0].WarrantyEnd)
	assert.Equal(t, serials[0].WarrantyStart.AddDate(0, 0, warranty), serials[0].WarrantyEnd.Time)

	// Asignación
	asg := decode[dto.AssignmentResponse](t, s.expect(s.do(http.MethodPost, "/api/assignments", keeper, dto.CreateAssignmentRequest{
		SerialID: serials[0].ID, AssigneeUserID: employeeID,
	}), http.StatusCreated))
	assert.Nil(t, asg.EndDate)

	again := s.do(http.MethodPost, "/api/assignments", keeper, dto.CreateAssignmentRequest{
		SerialID: serials[0].ID, AssigneeUserID: employeeID,
	})
	assert.Equal(t, http.StatusConflict, again.StatusCode)

	forbidden := s.do(http.MethodPost, "/api/assignments", buyer, dto.CreateAssignmentRequest{
		SerialID: serials[1].ID, AssigneeUserID: employeeID,
	})
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)

	sn := decode[dto.SerialResponse](t, s.expect(s.do(http.MethodGet, "/api/serials/"+serials[0].ID, viewer, nil), http.StatusOK))
	assert.Equal(t, "assigned", sn.Status)
	require.NotNil(t, sn.CurrentAssigneeUserID)
	assert.Equal(t, employeeID, *sn.CurrentAssigneeUserID)

	got = decode[dto.ItemResponse](t, s.expect(s.do(http.MethodGet, "/api/items/"+item.ID, viewer, nil), http.StatusOK))
	assert.Equal(t, 1, got.Stock)

	dept := decode[dto.ReportResponse](t, s.expect(s.do(http.MethodGet, "/api/reports/assignments-by-department", viewer, nil), http.StatusOK))
	require.Len(t, dept.Rows, 1)
	assert.Equal(t, "IT", dept.Rows[0].Key)

	// Devolución (idempotente)
	ret := decode[dto.AssignmentResponse](t, s.expect(s.do(http.MethodPost, "/api/assignments/"+asg.ID+"/return", keeper, nil), http.StatusOK))
	require.NotNil(t, ret.EndDate)
	s.expect(s.do(http.MethodPost, "/api/assignments/"+asg.ID+"/return", keeper, nil), http.StatusOK)

	got = decode[dto.ItemResponse](t, s.expect(s.do(http.MethodGet, "/api/items/"+item.ID, viewer, nil), http.StatusOK))
	assert.Equal(t, 2, got.Stock)

	active := decode[[]dto.AssignmentResponse](t, s.expect(s.do(http.MethodGet, "/api/assignments?active=true", viewer, nil), http.StatusOK))
	assert.Empty(t, active)

	// Reparación y baja
	s.expect(s.do(http.MethodPatch, "/api/serials/"+serials[1].ID+"/status", keeper, dto.UpdateSerialStatusRequest{Status: "in_repair"}), http.StatusOK)
	assigned := s.do(http.MethodPatch, "/api/serials/"+serials[1].ID+"/status", keeper, map[string]string{"status": "assigned"})
	assert.Equal(t, http.StatusBadRequest, assigned.StatusCode)

	// Cada mutación deja rastro
	assert.NotEmpty(t, s.store.ActivityLog())
}

func TestValidacionYNoEncontrado(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(adminID, entity.RoleAdmin)

	resp := s.do(http.MethodPost, "/api/items", admin, map[string]string{"category": "laptop"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "name")

	resp = s.do(http.MethodPost, "/api/orders", admin, dto.CreateOrderRequest{
		SupplierID: "20000000-0000-0000-0000-000000000099",
		Lines:      []dto.OrderLineRequest{{ItemID: "20000000-0000-0000-0000-000000000098", Qty: 1}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/orders/no-existe", admin, nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/items/no-existe", admin, nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/reports/desconocido", admin, nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/orders?status=perdida", admin, nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/serials?assigned=quizas", admin, nil).StatusCode)

	assert.Equal(t, http.StatusForbidden,
		s.do(http.MethodPost, "/api/orders", s.token(viewerID, entity.RoleViewer), dto.CreateOrderRequest{}).StatusCode)

	// Fecha vacía: se rechaza en vez de interpretarse como año 1
	for _, raw := range []string{"", "null"} {
		resp = s.do(http.MethodPost, "/api/orders/20000000-0000-0000-0000-000000000097/deliveries", admin,
			map[string]any{"serial_numbers": []string{"SN-1"}, "item_id": "item-1", "delivered_at": raw})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "delivered_at=%q", raw)
		assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
	}
	resp = s.do(http.MethodPost, "/api/assignments", admin,
		map[string]any{"serial_id": "s-1", "assignee_user_id": employeeID, "start_date": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdjuntos_SubirListarDescargarBorrar(t *testing.T) {
	s := newTestServer(t)
	buyer := s.token(buyerID, entity.RoleBuyer)
	sup := decode[dto.SupplierResponse](t, s.expect(s.do(http.MethodPost, "/api/suppliers", buyer,
		dto.CreateSupplierRequest{Name: "Lenovo"}), http.StatusCreated))
	item := decode[dto.ItemResponse](t, s.expect(s.do(http.MethodPost, "/api/items", s.token(adminID, entity.RoleAdmin),
		dto.CreateItemRequest{Name: "ThinkPad", Category: "laptop"}), http.StatusCreated))
	order := decode[dto.OrderResponse](t, s.expect(s.do(http.MethodPost, "/api/orders", buyer, dto.CreateOrderRequest{
		SupplierID: sup.ID, Lines: []dto.OrderLineRequest{{ItemID: item.ID, Qty: 1}},
	}), http.StatusCreated))

	upload := func(entityType, entityID string, content []byte) *http.Response {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("entity_type", entityType))
		require.NoError(t, w.WriteField("entity_id", entityID))
		fw, err := w.CreateFormFile("file", "albarán.txt")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/files", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set("Authorization", buyer)
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	content := []byte("albarán de entrega 42")
	file := decode[dto.FileResponse](t, s.expect(upload("order", order.ID, content), http.StatusCreated))
	assert.Equal(t, int64(len(content)), file.Size)
	assert.True(t, strings.HasPrefix(file.Mime, "text/plain"), file.Mime)

	assert.Equal(t, http.StatusNotFound, upload("order", "20000000-0000-0000-0000-000000000097", content).StatusCode)
	assert.Equal(t, http.StatusBadRequest, upload("factura", order.ID, content).StatusCode)

	view := decode[dto.OrderResponse](t, s.expect(s.do(http.MethodGet, "/api/orders/"+order.ID, buyer, nil), http.StatusOK))
	require.Len(t, view.Files, 1)

	dl := s.expect(s.do(http.MethodGet, file.DownloadURL, buyer, nil), http.StatusOK)
	got, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	dl.Body.Close()
	assert.Equal(t, content, got)
	assert.Contains(t, dl.Header.Get("Content-Disposition"), "attachment")

	s.expect(s.do(http.MethodDelete, "/api/files/"+file.ID, buyer, nil), http.StatusNoContent)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/files/"+file.ID, buyer, nil).StatusCode)
}

func TestDashboardEInformes(t *testing.T) {
	s := newTestServer(t)
	viewer := s.token(viewerID, entity.RoleViewer)

	dash := decode[dto.DashboardResponse](t, s.expect(s.do(http.MethodGet, "/api/dashboard", viewer, nil), http.StatusOK))
	assert.Len(t, dash.Widgets, 6)

	report := decode[dto.ReportResponse](t, s.expect(s.do(http.MethodGet, "/api/reports/orders-by-status", viewer, nil), http.StatusOK))
	assert.Len(t, report.Rows, 4)

	pdf := s.expect(s.do(http.MethodGet, "/api/reports/orders-by-status/pdf", viewer, nil), http.StatusOK)
	defer pdf.Body.Close()
	assert.Equal(t, "application/pdf", pdf.Header.Get("Content-Type"))
	body, err := io.ReadAll(pdf.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	repl := s.expect(s.do(http.MethodGet, "/api/replenishment", viewer, nil), http.StatusOK)
	assert.Empty(t, decode[[]dto.ReplenishmentSuggestion](t, repl))
}
