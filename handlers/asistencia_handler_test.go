package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"
	"github.com/Mrchuchi/confirmacion-asistencia/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("no se pudo abrir sqlite en memoria: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("no se pudo obtener la conexión: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Invitado{}, &models.Acompanante{}, &models.AsistenciaLog{}); err != nil {
		t.Fatalf("no se pudo migrar el esquema: %v", err)
	}

	app := fiber.New()
	h := NewAsistenciaHandler(services.NewAsistenciaService(db))
	app.Get("/api/v1/search", h.Search)
	app.Post("/api/v1/confirmar_asistencia", h.ConfirmarAsistencia)
	app.Get("/api/v1/stats", h.GetStats)
	app.Get("/api/v1/invitados", h.GetAllInvitados)
	app.Post("/api/v1/agregar-invitado-rapido", h.AgregarInvitadoRapido)
	app.Post("/api/v1/agregar-acompanante-extra", h.AgregarAcompananteExtra)
	return app, db
}

func TestSearchEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	invitado := &models.Invitado{Nombre: "Ana Prueba", Cedula: "123"}
	if err := db.Create(invitado).Error; err != nil {
		t.Fatalf("no se pudo crear el invitado: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/search?query=123", nil))
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200", resp.StatusCode)
	}
	var body models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("respuesta no decodificable: %v", err)
	}
	if body.Invitado.Cedula != "123" || body.TotalPersonas != 1 {
		t.Errorf("respuesta inesperada: %+v", body)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/search?query=nadie", nil))
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d para invitado inexistente, se esperaba 404", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d para consulta vacía, se esperaba 400", resp.StatusCode)
	}
}

func TestConfirmarAsistenciaEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	invitado := &models.Invitado{Nombre: "Beto Prueba", Cedula: "456"}
	if err := db.Create(invitado).Error; err != nil {
		t.Fatalf("no se pudo crear el invitado: %v", err)
	}

	payload, _ := json.Marshal(models.ConfirmarAsistenciaRequest{InvitadoID: invitado.ID})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/confirmar_asistencia", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200", resp.StatusCode)
	}
	var body models.ConfirmarAsistenciaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("respuesta no decodificable: %v", err)
	}
	if !body.Success || body.PersonasConfirmadas != 1 {
		t.Errorf("respuesta inesperada: %+v", body)
	}

	// Invitado inexistente → 400 con success=false.
	payload, _ = json.Marshal(models.ConfirmarAsistenciaRequest{InvitadoID: 999})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/confirmar_asistencia", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, se esperaba 400", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("respuesta no decodificable: %v", err)
	}
	if body.Success {
		t.Error("success = true para invitado inexistente")
	}
}

func TestAgregarInvitadoRapidoEndpoint(t *testing.T) {
	app, db := newTestApp(t)

	// El frontend manda los datos como query params, sin cuerpo.
	resp, err := app.Test(httptest.NewRequest(http.MethodPost,
		"/api/v1/agregar-invitado-rapido?nombre=Nueva+Invitada&cedula=777", nil))
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200", resp.StatusCode)
	}
	var invitado models.Invitado
	if err := db.Where("cedula = ?", "777").First(&invitado).Error; err != nil {
		t.Fatalf("no se creó el invitado por query params: %v", err)
	}
	if invitado.Nombre != "Nueva Invitada" || !invitado.EstadoAsistencia {
		t.Errorf("invitado inesperado: %+v", invitado)
	}

	// El cuerpo JSON sigue aceptándose como alternativa.
	payload, _ := json.Marshal(fiber.Map{"nombre": "Por Cuerpo", "cedula": "778"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agregar-invitado-rapido", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d para el cuerpo JSON, se esperaba 200", resp.StatusCode)
	}

	// Cédula repetida → 400.
	resp, err = app.Test(httptest.NewRequest(http.MethodPost,
		"/api/v1/agregar-invitado-rapido?nombre=Repetida&cedula=777", nil))
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d para cédula repetida, se esperaba 400", resp.StatusCode)
	}
}

func TestAgregarAcompananteExtraEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	titular := &models.Invitado{Nombre: "Titular", Cedula: "880", EstadoAsistencia: true}
	if err := db.Create(titular).Error; err != nil {
		t.Fatalf("no se pudo crear el invitado: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/agregar-acompanante-extra?invitado_id=%d&nombre_acompanante=Extra&cedula_acompanante=881", titular.ID), nil))
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200", resp.StatusCode)
	}
	var acomp models.Acompanante
	if err := db.Where("cedula = ?", "881").First(&acomp).Error; err != nil {
		t.Fatalf("no se creó el acompañante por query params: %v", err)
	}
	if acomp.InvitadoID != titular.ID || !acomp.EstadoAsistencia {
		t.Errorf("acompañante inesperado: %+v", acomp)
	}

	// Titular inexistente → 404.
	resp, err = app.Test(httptest.NewRequest(http.MethodPost,
		"/api/v1/agregar-acompanante-extra?invitado_id=999&nombre_acompanante=X&cedula_acompanante=882", nil))
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d para titular inexistente, se esperaba 404", resp.StatusCode)
	}
}

func TestStatsEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	if err := db.Create(&models.Invitado{Nombre: "Uno", Cedula: "1", EstadoAsistencia: true}).Error; err != nil {
		t.Fatalf("no se pudo crear el invitado: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	if err != nil {
		t.Fatalf("petición fallida: %v", err)
	}
	var stats models.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("respuesta no decodificable: %v", err)
	}
	if stats.TotalInvitados != 1 || stats.PersonasConfirmadas != 1 {
		t.Errorf("stats inesperadas: %+v", stats)
	}
}
