// Package backendtest is an in-memory stand-in for the remote travel API,
// used by tests across the repo. It speaks the same wire contract: bearer
// tokens are HS256 JWTs, registered passwords are bcrypt-hashed, records get
// server-assigned integer ids.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderhq/wander/internal/models"
)

type account struct {
	FullName     string
	PasswordHash []byte
}

// Server holds the fake API state. All exported methods are safe for
// concurrent use, matching the concurrent delete fan-out the store issues.
type Server struct {
	*httptest.Server

	secret []byte

	mu          sync.Mutex
	accounts    map[string]account
	profile     models.UserProfile
	itineraries []models.Itinerary
	memories    []models.Memory
	nextID      int
	forced      map[string]int
	requests    map[string]int
}

func New() *Server {
	server := &Server{
		secret:      []byte("backendtest-secret"),
		accounts:    map[string]account{},
		profile:     models.UserProfile{Name: "Remote User", Email: "remote@example.com"},
		itineraries: []models.Itinerary{},
		memories:    []models.Memory{},
		nextID:      1,
		forced:      map[string]int{},
		requests:    map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", server.handleRegister)
	mux.HandleFunc("POST /auth/login", server.handleLogin)
	mux.HandleFunc("GET /profile", server.authorized(server.handleGetProfile))
	mux.HandleFunc("PUT /profile", server.authorized(server.handlePutProfile))
	mux.HandleFunc("GET /itineraries", server.authorized(server.handleListItineraries))
	mux.HandleFunc("POST /itineraries", server.authorized(server.handleCreateItinerary))
	mux.HandleFunc("GET /itineraries/{id}", server.authorized(server.handleGetItinerary))
	mux.HandleFunc("PUT /itineraries/{id}", server.authorized(server.handlePutItinerary))
	mux.HandleFunc("DELETE /itineraries/{id}", server.authorized(server.handleDeleteItinerary))
	mux.HandleFunc("POST /itineraries/{id}/dayplans", server.authorized(server.handleCreateDayPlan))
	mux.HandleFunc("PUT /itineraries/{id}/dayplans/{planID}", server.authorized(server.handlePutDayPlan))
	mux.HandleFunc("GET /memories", server.authorized(server.handleListMemories))
	mux.HandleFunc("POST /memories", server.authorized(server.handleCreateMemory))
	mux.HandleFunc("PUT /memories/{id}", server.authorized(server.handlePutMemory))
	mux.HandleFunc("DELETE /memories/{id}", server.authorized(server.handleDeleteMemory))

	server.Server = httptest.NewServer(server.counting(mux))
	return server
}

// RegisterAccount seeds a login the way POST /auth/register would.
func (server *Server) RegisterAccount(fullName string, email string, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	server.mu.Lock()
	defer server.mu.Unlock()
	server.accounts[strings.ToLower(email)] = account{FullName: fullName, PasswordHash: hash}
}

// IssueToken mints a bearer token accepted by the authorized routes.
func (server *Server) IssueToken(email string) string {
	claims := jwt.RegisteredClaims{
		Subject:   strings.ToLower(email),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(server.secret)
	return token
}

// SeedItineraries replaces the itinerary collection, assigning ids to
// records that lack one.
func (server *Server) SeedItineraries(trips ...models.Itinerary) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.itineraries = []models.Itinerary{}
	for _, trip := range trips {
		if trip.ID == 0 {
			trip.ID = server.nextID
			server.nextID++
		} else if trip.ID >= server.nextID {
			server.nextID = trip.ID + 1
		}
		if trip.DayPlans == nil {
			trip.DayPlans = []models.DayPlan{}
		}
		server.itineraries = append(server.itineraries, trip)
	}
}

// SeedMemories replaces the memory collection, assigning ids as needed.
func (server *Server) SeedMemories(memories ...models.Memory) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.memories = []models.Memory{}
	for _, memory := range memories {
		if memory.ID == 0 {
			memory.ID = server.nextID
			server.nextID++
		} else if memory.ID >= server.nextID {
			server.nextID = memory.ID + 1
		}
		server.memories = append(server.memories, memory)
	}
}

// SeedProfile replaces the profile record.
func (server *Server) SeedProfile(profile models.UserProfile) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.profile = profile
}

// ForceStatus makes the next requests matching "METHOD /path" answer with
// the given status instead of the real handler.
func (server *Server) ForceStatus(method string, path string, status int) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.forced[method+" "+path] = status
}

// RequestCount reports how many requests hit "METHOD /path".
func (server *Server) RequestCount(method string, path string) int {
	server.mu.Lock()
	defer server.mu.Unlock()
	return server.requests[method+" "+path]
}

// Itineraries returns a copy of the server-side itinerary collection.
func (server *Server) Itineraries() []models.Itinerary {
	server.mu.Lock()
	defer server.mu.Unlock()
	trips := make([]models.Itinerary, len(server.itineraries))
	copy(trips, server.itineraries)
	return trips
}

// Memories returns a copy of the server-side memory collection.
func (server *Server) Memories() []models.Memory {
	server.mu.Lock()
	defer server.mu.Unlock()
	memories := make([]models.Memory, len(server.memories))
	copy(memories, server.memories)
	return memories
}

// Profile returns the server-side profile record.
func (server *Server) Profile() models.UserProfile {
	server.mu.Lock()
	defer server.mu.Unlock()
	return server.profile
}

func (server *Server) counting(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		server.mu.Lock()
		server.requests[key]++
		forcedStatus, forced := server.forced[key]
		server.mu.Unlock()

		if forced {
			http.Error(w, "forced failure", forcedStatus)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (server *Server) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
			return server.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (server *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	payload := struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(payload.Email)
	server.mu.Lock()
	defer server.mu.Unlock()
	if _, exists := server.accounts[email]; exists {
		http.Error(w, "email taken", http.StatusConflict)
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.MinCost)
	server.accounts[email] = account{FullName: payload.FullName, PasswordHash: hash}
	w.WriteHeader(http.StatusCreated)
}

func (server *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(payload.Email)
	server.mu.Lock()
	stored, exists := server.accounts[email]
	server.mu.Unlock()
	if !exists || bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte(payload.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]string{"token": server.IssueToken(email)})
}

func (server *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	profile := server.profile
	server.mu.Unlock()
	writeJSON(w, profile)
}

func (server *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	profile := models.UserProfile{}
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	server.mu.Lock()
	server.profile = profile
	server.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (server *Server) handleListItineraries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, server.Itineraries())
}

func (server *Server) handleCreateItinerary(w http.ResponseWriter, r *http.Request) {
	trip := models.Itinerary{}
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	server.mu.Lock()
	trip.ID = server.nextID
	server.nextID++
	if trip.DayPlans == nil {
		trip.DayPlans = []models.DayPlan{}
	}
	server.itineraries = append(server.itineraries, trip)
	server.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, trip)
}

func (server *Server) handleGetItinerary(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	server.mu.Lock()
	defer server.mu.Unlock()
	for _, trip := range server.itineraries {
		if trip.ID == id {
			writeJSON(w, trip)
			return
		}
	}
	http.Error(w, "itinerary not found", http.StatusNotFound)
}

func (server *Server) handlePutItinerary(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	trip := models.Itinerary{}
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	trip.ID = id

	server.mu.Lock()
	defer server.mu.Unlock()
	for index := range server.itineraries {
		if server.itineraries[index].ID == id {
			if trip.DayPlans == nil {
				trip.DayPlans = server.itineraries[index].DayPlans
			}
			server.itineraries[index] = trip
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "itinerary not found", http.StatusNotFound)
}

func (server *Server) handleDeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	server.mu.Lock()
	defer server.mu.Unlock()
	kept := make([]models.Itinerary, 0, len(server.itineraries))
	for _, trip := range server.itineraries {
		if trip.ID != id {
			kept = append(kept, trip)
		}
	}
	server.itineraries = kept
	w.WriteHeader(http.StatusNoContent)
}

func (server *Server) handleCreateDayPlan(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	plan := models.DayPlan{}
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()
	for index := range server.itineraries {
		if server.itineraries[index].ID == id {
			plan.ID = server.nextID
			server.nextID++
			server.itineraries[index].DayPlans = append(server.itineraries[index].DayPlans, plan)
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, plan)
			return
		}
	}
	http.Error(w, "itinerary not found", http.StatusNotFound)
}

func (server *Server) handlePutDayPlan(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	planID := pathID(r, "planID")
	plan := models.DayPlan{}
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	plan.ID = planID

	server.mu.Lock()
	defer server.mu.Unlock()
	for tripIndex := range server.itineraries {
		if server.itineraries[tripIndex].ID != id {
			continue
		}
		for planIndex := range server.itineraries[tripIndex].DayPlans {
			if server.itineraries[tripIndex].DayPlans[planIndex].ID == planID {
				server.itineraries[tripIndex].DayPlans[planIndex] = plan
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
	}
	http.Error(w, "day plan not found", http.StatusNotFound)
}

func (server *Server) handleListMemories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, server.Memories())
}

func (server *Server) handleCreateMemory(w http.ResponseWriter, r *http.Request) {
	memory := models.Memory{}
	if err := json.NewDecoder(r.Body).Decode(&memory); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	server.mu.Lock()
	memory.ID = server.nextID
	server.nextID++
	server.memories = append(server.memories, memory)
	server.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, memory)
}

func (server *Server) handlePutMemory(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	memory := models.Memory{}
	if err := json.NewDecoder(r.Body).Decode(&memory); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	memory.ID = id

	server.mu.Lock()
	defer server.mu.Unlock()
	for index := range server.memories {
		if server.memories[index].ID == id {
			server.memories[index] = memory
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "memory not found", http.StatusNotFound)
}

func (server *Server) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	server.mu.Lock()
	defer server.mu.Unlock()
	kept := make([]models.Memory, 0, len(server.memories))
	for _, memory := range server.memories {
		if memory.ID != id {
			kept = append(kept, memory)
		}
	}
	server.memories = kept
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request, name string) int {
	id, _ := strconv.Atoi(r.PathValue(name))
	return id
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
