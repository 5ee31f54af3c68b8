//go:build e2e

package e2e

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

type MoneyCall struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
}

// StubExternal serves the scooter, zone, user, config and payment endpoints
// from in-memory state that tests can rewrite between cases.
type StubExternal struct {
	server *httptest.Server

	mu         sync.Mutex
	scooters   map[string]gin.H
	zones      map[string]gin.H
	users      map[string]gin.H
	configs    gin.H
	configsErr bool
	clearFails bool
	holds      []MoneyCall
	clears     []MoneyCall
}

func NewStubExternal() *StubExternal {
	s := &StubExternal{}
	s.Reset()

	r := gin.New()
	r.GET("/scooter-data", s.lookup(func() map[string]gin.H { return s.scooters }))
	r.GET("/tariff-zone-data", s.lookup(func() map[string]gin.H { return s.zones }))
	r.GET("/user-profile", s.lookup(func() map[string]gin.H { return s.users }))
	r.GET("/configs", s.serveConfigs)
	r.POST("/hold-money-for-order", s.recordMoney(func(c MoneyCall) bool {
		s.holds = append(s.holds, c)
		return true
	}))
	r.POST("/clear-money-for-order", s.recordMoney(func(c MoneyCall) bool {
		if s.clearFails {
			return false
		}
		s.clears = append(s.clears, c)
		return true
	}))

	s.server = httptest.NewServer(r)
	return s
}

func (s *StubExternal) URL() string { return s.server.URL }

func (s *StubExternal) Close() { s.server.Close() }

// Reset restores the default fixtures: one scooter in zone korolev and a
// user without debt or subscription.
func (s *StubExternal) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scooters = map[string]gin.H{
		"scooter-1": {"id": "scooter-1", "zone_id": "korolev", "charge": 57},
	}
	s.zones = map[string]gin.H{
		"korolev": {"id": "korolev", "price_per_minute": 12, "price_unlock": 45, "default_deposit": 300},
	}
	s.users = map[string]gin.H{
		"user-1": {"id": "user-1", "has_subscribtion": false, "trusted": false, "rides_count": 0, "current_debt": 0, "total_debt": 0},
	}
	s.configs = gin.H{}
	s.configsErr = false
	s.clearFails = false
	s.holds = nil
	s.clears = nil
}

func (s *StubExternal) SetUser(id string, profile gin.H) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = profile
}

func (s *StubExternal) SetScooter(id string, data gin.H) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scooters[id] = data
}

func (s *StubExternal) SetConfigs(cfg gin.H) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs = cfg
}

func (s *StubExternal) FailConfigs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configsErr = true
}

func (s *StubExternal) FailClears() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearFails = true
}

func (s *StubExternal) Holds() []MoneyCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MoneyCall(nil), s.holds...)
}

func (s *StubExternal) Clears() []MoneyCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MoneyCall(nil), s.clears...)
}

func (s *StubExternal) lookup(table func() map[string]gin.H) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		item, ok := table()[c.Query("id")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func (s *StubExternal) serveConfigs(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.configsErr {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, s.configs)
}

func (s *StubExternal) recordMoney(accept func(MoneyCall) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var call MoneyCall
		if err := c.ShouldBindJSON(&call); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		s.mu.Lock()
		ok := accept(call)
		s.mu.Unlock()
		if !ok {
			c.JSON(http.StatusBadGateway, gin.H{"detail": "payment provider unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
