package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pet-lost-found/internal/ports/messaging"
	"pet-lost-found/internal/router"
)

// recordingGateway guarda cada mensaje enviado.
type recordingGateway struct {
	mu   sync.Mutex
	sent []messaging.TemplateMessage
}

func (g *recordingGateway) SendTemplate(_ context.Context, msg messaging.TemplateMessage) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, msg)
	return fmt.Sprintf("SM%d", len(g.sent)), nil
}

func (g *recordingGateway) to(phone string) []messaging.TemplateMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []messaging.TemplateMessage
	for _, m := range g.sent {
		if m.To == phone {
			out = append(out, m)
		}
	}
	return out
}

const (
	ownerPhone    = "+573001110000"
	neighborPhone = "+573002220000"
	finderPhone   = "+573003330000"
	photoURL      = "https://abc.supabase.co/storage/v1/object/public/sightings/found.jpg"
)

func newServer(t *testing.T) (*httptest.Server, *recordingGateway) {
	t.Helper()
	gw := &recordingGateway{}
	ts := httptest.NewServer(router.NewRouter(router.Options{Gateway: gw}))
	t.Cleanup(ts.Close)
	return ts, gw
}

func TestHTTP_EndToEnd_LostAndFound(t *testing.T) {
	ts, gw := newServer(t)

	// 1) Perfiles: dueño y vecino en la misma ciudad (escrita distinto)
	ensureProfile(t, ts.URL, ownerPhone, map[string]any{"name": "Laura", "city": "Medellín"})
	ensureProfile(t, ts.URL, neighborPhone, map[string]any{"name": "Pedro", "city": "  medellin "})
	ensureProfile(t, ts.URL, finderPhone, map[string]any{"name": "Ana", "city": "Bogotá"})

	// 2) Sin suscripción no puede registrar
	{
		st, body := doReq(t, ts.URL, "POST", "/pets", ownerPhone, petPayload("Max"))
		if st != http.StatusPaymentRequired {
			t.Fatalf("expected 402 without subscription, got %d body=%s", st, string(body))
		}
		assertErrorCode(t, body, "SUBSCRIPTION_REQUIRED")
	}

	// 3) Plan básico: un cupo
	{
		st, body := doReq(t, ts.URL, "POST", "/me/subscriptions", ownerPhone, map[string]any{"plan_id": "basic"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 subscribe, got %d body=%s", st, string(body))
		}
	}
	petID := createPet(t, ts.URL, ownerPhone, petPayload("Max"))

	{
		st, body := doReq(t, ts.URL, "POST", "/pets", ownerPhone, petPayload("Luna"))
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 over the limit, got %d body=%s", st, string(body))
		}
		assertErrorCode(t, body, "PET_LIMIT_EXCEEDED")
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/me/quota", ownerPhone, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 quota, got %d body=%s", st, string(body))
		}
		var q struct {
			TotalLimit   int  `json:"total_limit"`
			CurrentCount int  `json:"current_count"`
			CanRegister  bool `json:"can_register"`
		}
		mustDecode(t, body, &q)
		if q.TotalLimit != 1 || q.CurrentCount != 1 || q.CanRegister {
			t.Fatalf("unexpected quota: %+v", q)
		}
	}

	// 4) Alerta: sin referencia y una sola mascota => la usa; difunde al vecino
	alertID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/alerts", ownerPhone, map[string]any{
			"last_seen":   "2026-03-10 18:30",
			"location":    "Parque Lleras",
			"description": "se asustó con pólvora",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create alert, got %d body=%s", st, string(body))
		}
		var out struct {
			Alert struct {
				ID    string `json:"id"`
				PetID string `json:"pet_id"`
			} `json:"alert"`
			Broadcast struct {
				TotalRecipients int `json:"total_recipients"`
				SuccessfulSends int `json:"successful_sends"`
			} `json:"broadcast"`
		}
		mustDecode(t, body, &out)
		if out.Alert.PetID != petID {
			t.Fatalf("alert for wrong pet: %s", out.Alert.PetID)
		}
		if out.Broadcast.TotalRecipients != 1 || out.Broadcast.SuccessfulSends != 1 {
			t.Fatalf("expected broadcast to the neighbor only, got %+v", out.Broadcast)
		}
		alertID = out.Alert.ID
	}
	if n := len(gw.to(neighborPhone)); n != 1 {
		t.Fatalf("expected 1 broadcast to neighbor, got %d", n)
	}
	if n := len(gw.to(ownerPhone)); n != 0 {
		t.Fatalf("owner must not receive own broadcast, got %d", n)
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/alerts", ownerPhone, map[string]any{"last_seen": "2026-03-10"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 second alert, got %d body=%s", st, string(body))
		}
		assertErrorCode(t, body, "ALERT_ALREADY_ACTIVE")
	}

	// Reintento de difusión: ya salió, no se repite
	{
		st, body := doReq(t, ts.URL, "POST", "/alerts/"+alertID+"/broadcast", ownerPhone, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 rebroadcast, got %d body=%s", st, string(body))
		}
		var out struct {
			Broadcast struct {
				Duplicate bool `json:"duplicate"`
			} `json:"broadcast"`
		}
		mustDecode(t, body, &out)
		if !out.Broadcast.Duplicate {
			t.Fatalf("expected duplicate broadcast to be suppressed, got %s", string(body))
		}
	}
	if n := len(gw.to(neighborPhone)); n != 1 {
		t.Fatalf("neighbor must receive the alert only once, got %d", n)
	}

	// 5) Finder busca con descripción libre
	{
		st, body := doReq(t, ts.URL, "POST", "/search", finderPhone, map[string]any{
			"description": "labrador dorado con collar rojo",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d body=%s", st, string(body))
		}
		var out struct {
			Results []struct {
				AlertID    string `json:"alert_id"`
				OwnerPhone string `json:"owner_phone"`
			} `json:"results"`
		}
		mustDecode(t, body, &out)
		if len(out.Results) != 1 || out.Results[0].AlertID != alertID {
			t.Fatalf("expected the active alert as top result, got %s", string(body))
		}
	}

	// 6) Sin foto no hay avistamiento
	{
		st, body := doReq(t, ts.URL, "POST", "/sightings", finderPhone, map[string]any{"alert_id": alertID})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 without photo, got %d body=%s", st, string(body))
		}
		assertErrorCode(t, body, "PHOTO_REQUIRED")
	}

	// 7) Avistamiento vinculado: notifica al dueño una vez y cierra la alerta
	{
		st, body := doReq(t, ts.URL, "POST", "/sightings", finderPhone, map[string]any{
			"alert_id":  alertID,
			"location":  "Calle 10 con 43",
			"photo_url": photoURL,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 sighting, got %d body=%s", st, string(body))
		}
		var out struct {
			IsMatch          bool `json:"is_match"`
			NotificationSent bool `json:"notification_sent"`
			Match            struct {
				OwnerPhone string `json:"owner_phone"`
			} `json:"match"`
		}
		mustDecode(t, body, &out)
		if !out.IsMatch || !out.NotificationSent || out.Match.OwnerPhone != ownerPhone {
			t.Fatalf("unexpected match result: %s", string(body))
		}
	}
	owned := gw.to(ownerPhone)
	if len(owned) != 1 {
		t.Fatalf("expected exactly one notification to owner, got %d", len(owned))
	}
	if got := owned[0].Variables["7"]; got != "sightings/found.jpg" {
		t.Fatalf("expected gateway photo path, got %q", got)
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/me/alerts", ownerPhone, nil)
		if st != http.StatusOK || string(bytes.TrimSpace(body)) != "[]" {
			t.Fatalf("expected no active alerts after match, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/alerts/"+alertID+"/sightings", ownerPhone, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing sightings, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		mustDecode(t, body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 sighting, got %d", len(items))
		}
	}
}

func TestHTTP_OrphanSightingThenConfirm(t *testing.T) {
	ts, gw := newServer(t)

	ensureProfile(t, ts.URL, ownerPhone, map[string]any{"name": "Laura", "city": "Cali"})
	doReq(t, ts.URL, "POST", "/me/subscriptions", ownerPhone, map[string]any{"plan_id": "family"})
	createPet(t, ts.URL, ownerPhone, petPayload("Max"))
	createPet(t, ts.URL, ownerPhone, petPayload("Rocky"))

	// Dos mascotas y sin referencia => ambigua, con candidatos
	{
		st, body := doReq(t, ts.URL, "POST", "/alerts", ownerPhone, map[string]any{"last_seen": "2026-03-10"})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 ambiguous, got %d body=%s", st, string(body))
		}
		var e struct {
			Error      string   `json:"error"`
			Candidates []string `json:"candidates"`
		}
		mustDecode(t, body, &e)
		if e.Error != "PET_AMBIGUOUS" || len(e.Candidates) != 2 {
			t.Fatalf("unexpected ambiguity body: %s", string(body))
		}
	}

	var alertID string
	{
		st, body := doReq(t, ts.URL, "POST", "/alerts", ownerPhone, map[string]any{"last_seen": "2026-03-10", "pet": "rocky"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 alert, got %d body=%s", st, string(body))
		}
		var out struct {
			Alert struct {
				ID string `json:"id"`
			} `json:"alert"`
		}
		mustDecode(t, body, &out)
		alertID = out.Alert.ID
	}

	var sightingID string
	{
		st, body := doReq(t, ts.URL, "POST", "/sightings", finderPhone, map[string]any{"photo_url": photoURL})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 orphan sighting, got %d body=%s", st, string(body))
		}
		var out struct {
			SightingID string `json:"sighting_id"`
			IsMatch    bool   `json:"is_match"`
		}
		mustDecode(t, body, &out)
		if out.IsMatch {
			t.Fatalf("orphan sighting must not be a match")
		}
		sightingID = out.SightingID
	}
	if n := len(gw.to(ownerPhone)); n != 0 {
		t.Fatalf("no notification expected for orphan sighting, got %d", n)
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/sightings/"+sightingID+"/confirm", finderPhone, map[string]any{"alert_id": alertID})
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/sightings/"+sightingID+"/confirm", finderPhone, map[string]any{"alert_id": alertID})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 second confirm, got %d body=%s", st, string(body))
		}
		assertErrorCode(t, body, "SIGHTING_ALREADY_MATCHED")
	}
	if n := len(gw.to(ownerPhone)); n != 1 {
		t.Fatalf("expected exactly one owner notification, got %d", n)
	}
}

func TestHTTP_RequiresIdentity(t *testing.T) {
	ts, _ := newServer(t)

	for _, path := range []string{"/me", "/pets", "/me/alerts", "/me/quota"} {
		st, _ := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without identity, got %d", path, st)
		}
	}

	st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/plans", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 plans, got %d", st)
	}
}

func TestHTTP_RegisterPet_ReportsAllMissingFields(t *testing.T) {
	ts, _ := newServer(t)
	ensureProfile(t, ts.URL, ownerPhone, nil)

	st, body := doReq(t, ts.URL, "POST", "/pets", ownerPhone, map[string]any{"name": "Max"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
	var e struct {
		Fields []string `json:"fields"`
	}
	mustDecode(t, body, &e)
	if len(e.Fields) != 7 {
		t.Fatalf("expected 7 missing fields, got %v", e.Fields)
	}
}

func petPayload(name string) map[string]any {
	return map[string]any{
		"name":      name,
		"species":   "perro",
		"breed":     "labrador",
		"color":     "dorado",
		"gender":    "macho",
		"size":      "grande",
		"coat_type": "corto",
		"photo_url": "https://abc.supabase.co/storage/v1/object/public/pets/" + name + ".jpg",
		"marks":     "collar rojo",
	}
}

func ensureProfile(t *testing.T, baseURL, phone string, payload map[string]any) {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/profiles", phone, payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 ensure profile, got %d body=%s", st, string(body))
	}
}

func createPet(t *testing.T, baseURL, phone string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/pets", phone, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	mustDecode(t, body, &out)
	if out.ID == "" {
		t.Fatalf("missing pet id in %s", string(body))
	}
	return out.ID
}

func assertErrorCode(t *testing.T, body []byte, code string) {
	t.Helper()
	var e struct {
		Error string `json:"error"`
	}
	mustDecode(t, body, &e)
	if e.Error != code {
		t.Fatalf("expected error %s, got %s", code, string(body))
	}
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

func doReq(t *testing.T, baseURL, method, path, debugPhone string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugPhone != "" {
		req.Header.Set("X-Debug-Phone", debugPhone)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
