package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"teamup/controllers"
	"teamup/dto"
	"teamup/middleware"
	models "teamup/models/postgres"
	"teamup/services/redis"
	"teamup/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

// In-memory substitutes for the persistence ports and the session
// store, so the handlers run without PostgreSQL or Redis.

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*redis.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*redis.Session)}
}

func (f *fakeSessions) SaveSession(tokenID string, session *redis.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[tokenID] = session
	return nil
}

func (f *fakeSessions) GetSession(tokenID string) (*redis.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[tokenID], nil
}

func (f *fakeSessions) DeleteSession(tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, tokenID)
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return store.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) ByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

type fakeGameStore struct {
	mu    sync.Mutex
	games map[string]*models.Game
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{games: make(map[string]*models.Game)}
}

func (f *fakeGameStore) List(ctx context.Context) ([]models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	games := make([]models.Game, 0, len(f.games))
	for _, g := range f.games {
		games = append(games, *g)
	}
	return games, nil
}

func (f *fakeGameStore) ByID(ctx context.Context, id string) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	game, ok := f.games[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *game
	return &copied, nil
}

func (f *fakeGameStore) ByName(ctx context.Context, name string) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
		if g.Name == name {
			copied := *g
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeGameStore) Create(ctx context.Context, game *models.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
		if g.Name == game.Name {
			return store.ErrDuplicate
		}
	}
	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	copied := *game
	f.games[game.ID] = &copied
	return nil
}

type fakeLobbyStore struct {
	mu      sync.Mutex
	lobbies map[string]*models.Lobby
	users   *fakeUserStore
	games   *fakeGameStore
}

func newFakeLobbyStore(users *fakeUserStore, games *fakeGameStore) *fakeLobbyStore {
	return &fakeLobbyStore{
		lobbies: make(map[string]*models.Lobby),
		users:   users,
		games:   games,
	}
}

// populate mirrors the preloading the real store does.
func (f *fakeLobbyStore) populate(lobby *models.Lobby) *models.Lobby {
	copied := *lobby
	if game, err := f.games.ByID(context.Background(), copied.GameID); err == nil {
		copied.Game = *game
	}
	if author, err := f.users.ByID(context.Background(), copied.AuthorID); err == nil {
		copied.Author = *author
	}
	members := make([]*models.User, 0, len(lobby.Members))
	for _, m := range lobby.Members {
		if user, err := f.users.ByID(context.Background(), m.ID); err == nil {
			members = append(members, user)
		}
	}
	copied.Members = members
	copied.FilledSlots = len(members)
	return &copied
}

func (f *fakeLobbyStore) List(ctx context.Context, filter store.LobbyFilter) ([]models.Lobby, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lobbies := make([]models.Lobby, 0, len(f.lobbies))
	for _, l := range f.lobbies {
		populated := f.populate(l)
		if filter.Game != "" && !strings.Contains(strings.ToLower(populated.Game.Name), strings.ToLower(filter.Game)) {
			continue
		}
		if filter.Platform != "" && !strings.EqualFold(populated.Platform, filter.Platform) {
			continue
		}
		if filter.MinSkill > 0 && populated.SkillLevel < filter.MinSkill {
			continue
		}
		if filter.MaxSkill > 0 && populated.SkillLevel > filter.MaxSkill {
			continue
		}
		if filter.HasSlots && populated.FilledSlots >= populated.Slots {
			continue
		}
		lobbies = append(lobbies, *populated)
	}
	return lobbies, nil
}

func (f *fakeLobbyStore) ByID(ctx context.Context, id string) (*models.Lobby, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lobby, ok := f.lobbies[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return f.populate(lobby), nil
}

func (f *fakeLobbyStore) Create(ctx context.Context, lobby *models.Lobby) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lobby.ID == "" {
		lobby.ID = uuid.NewString()
	}
	lobby.FilledSlots = len(lobby.Members)
	copied := *lobby
	f.lobbies[lobby.ID] = &copied
	return nil
}

func (f *fakeLobbyStore) AddMember(ctx context.Context, lobbyID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lobby, ok := f.lobbies[lobbyID]
	if !ok {
		return store.ErrNotFound
	}
	for _, m := range lobby.Members {
		if m.ID == userID {
			return store.ErrAlreadyMember
		}
	}
	if len(lobby.Members) >= lobby.Slots {
		return store.ErrLobbyFull
	}
	user, err := f.users.ByID(ctx, userID)
	if err != nil {
		return err
	}
	lobby.Members = append(lobby.Members, user)
	lobby.FilledSlots = len(lobby.Members)
	return nil
}

func (f *fakeLobbyStore) RemoveMember(ctx context.Context, lobbyID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lobby, ok := f.lobbies[lobbyID]
	if !ok {
		return store.ErrNotFound
	}
	for i, m := range lobby.Members {
		if m.ID == userID {
			lobby.Members = append(lobby.Members[:i], lobby.Members[i+1:]...)
			lobby.FilledSlots = len(lobby.Members)
			return nil
		}
	}
	return store.ErrNotMember
}

func (f *fakeLobbyStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lobbies[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.lobbies, id)
	return nil
}

type fakeBidStore struct {
	mu    sync.Mutex
	bids  map[string]*models.Bid
	users *fakeUserStore
	games *fakeGameStore
}

func newFakeBidStore(users *fakeUserStore, games *fakeGameStore) *fakeBidStore {
	return &fakeBidStore{
		bids:  make(map[string]*models.Bid),
		users: users,
		games: games,
	}
}

func (f *fakeBidStore) populate(bid *models.Bid) *models.Bid {
	copied := *bid
	if game, err := f.games.ByID(context.Background(), copied.GameID); err == nil {
		copied.Game = *game
	}
	if author, err := f.users.ByID(context.Background(), copied.AuthorID); err == nil {
		copied.Author = *author
	}
	return &copied
}

func (f *fakeBidStore) List(ctx context.Context, filter store.BidFilter) ([]models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bids := make([]models.Bid, 0, len(f.bids))
	for _, b := range f.bids {
		populated := f.populate(b)
		if filter.Description != "" && !strings.Contains(strings.ToLower(populated.Description), strings.ToLower(filter.Description)) {
			continue
		}
		if filter.GameName != "" && populated.Game.Name != filter.GameName {
			continue
		}
		if filter.AuthorID != "" && populated.AuthorID != filter.AuthorID {
			continue
		}
		bids = append(bids, *populated)
	}
	return bids, nil
}

func (f *fakeBidStore) ByID(ctx context.Context, id string) (*models.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bid, ok := f.bids[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return f.populate(bid), nil
}

func (f *fakeBidStore) Create(ctx context.Context, bid *models.Bid) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if bid.ID == "" {
		bid.ID = uuid.NewString()
	}
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = time.Now()
	}
	copied := *bid
	f.bids[bid.ID] = &copied
	return nil
}

func (f *fakeBidStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bids[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.bids, id)
	return nil
}

// testEnv bundles a router wired like the real one, but on fakes.
type testEnv struct {
	router   *gin.Engine
	users    *fakeUserStore
	games    *fakeGameStore
	lobbies  *fakeLobbyStore
	bids     *fakeBidStore
	sessions *fakeSessions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	users := newFakeUserStore()
	games := newFakeGameStore()
	lobbies := newFakeLobbyStore(users, games)
	bids := newFakeBidStore(users, games)
	sessionStore := newFakeSessions()

	router := gin.New()
	router.Use(sessions.Sessions("teamup_session", cookie.NewStore([]byte("test-key"))))

	router.POST("/api/users/signup", controllers.SignUp(users, sessionStore))
	router.POST("/api/users/login", controllers.Login(users, sessionStore))
	router.GET("/api/users/:user_id", controllers.GetUserPublicInfo(users))

	router.GET("/api/games", controllers.GetAllGames(games))

	router.GET("/api/lobbies", controllers.GetAllLobbies(lobbies))
	router.GET("/api/lobbies/:lobby_id", controllers.GetLobbyInfo(lobbies))

	router.GET("/api/bids", controllers.GetAllBids(bids))
	router.GET("/api/bids/:bid_id", controllers.GetBidInfo(bids))

	authentication := router.Group("/auth")
	authentication.Use(middleware.AuthRequired(sessionStore))
	{
		authentication.DELETE("/logout", controllers.Logout(sessionStore))
		authentication.GET("/me", controllers.GetUserPrivateInfo(users))
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthRequired(sessionStore))
	{
		protected.PATCH("/users/:user_id", controllers.UpdateUserInfo(users))
		protected.POST("/games", controllers.CreateGame(games))
		protected.POST("/lobbies", controllers.CreateLobby(lobbies, games, users))
		protected.POST("/lobbies/:lobby_id/join", controllers.JoinLobby(lobbies))
		protected.POST("/lobbies/:lobby_id/leave", controllers.LeaveLobby(lobbies))
		protected.DELETE("/lobbies/:lobby_id", controllers.DeleteLobby(lobbies))
		protected.POST("/bids", controllers.CreateBid(bids, games))
		protected.DELETE("/bids/:bid_id", controllers.DeleteBid(bids))
	}

	return &testEnv{
		router:   router,
		users:    users,
		games:    games,
		lobbies:  lobbies,
		bids:     bids,
		sessions: sessionStore,
	}
}

// perform runs one request against the test router. A non-empty token
// is sent as a bearer Authorization header.
func (env *testEnv) perform(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), out))
}

func strPtr(s string) *string { return &s }

func validSignup(username string) dto.SignupPayload {
	return dto.SignupPayload{
		Username: username,
		Password: "abc123!@",
		Gender:   "male",
		Bio:      strPtr("Competitive support main looking for a steady duo partner."),
	}
}

// signup registers a user through the endpoint and returns its record,
// token included.
func (env *testEnv) signup(t *testing.T, username string) dto.UserPayload {
	recorder := env.perform(t, http.MethodPost, "/api/users/signup", validSignup(username), "")
	assert.Equal(t, http.StatusCreated, recorder.Code)

	var payload dto.UserPayload
	decode(t, recorder, &payload)
	assert.NotEmpty(t, payload.Token)
	return payload
}

// seedGame inserts a game directly into the fake store.
func (env *testEnv) seedGame(t *testing.T, name string) *models.Game {
	game := &models.Game{
		Name:        name,
		Description: "Seeded for tests",
		ReleaseDate: datatypes.Date(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)),
	}
	assert.NoError(t, env.games.Create(context.Background(), game))
	return game
}

func validLobbyWrite(gameID string) dto.LobbyWritePayload {
	return dto.LobbyWritePayload{
		Name:       "Friday ranked grind",
		GameID:     gameID,
		Platform:   "PC",
		Slots:      5,
		StartTime:  time.Date(2026, 9, 5, 21, 30, 0, 0, time.UTC),
		SkillLevel: 6,
		Goal:       "Ranked",
	}
}
