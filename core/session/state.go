// Package session holds the storefront's shared application state: cart,
// likes, producer verification, notifications and messaging. Every method
// is safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"beatwave/core/cart"
	"beatwave/model"
)

var (
	ErrRequestNotFound = errors.New("verification request not found")
	ErrUnknownAudience = errors.New("unknown audience")
	ErrChatNotFound    = errors.New("chat not found")
	ErrEmptyMessage    = errors.New("message is empty")
)

// InitialVerifiedProducer is verified before any request is approved.
const InitialVerifiedProducer = "Metro Boomin"

// Seed is the initial content of an AppState.
type Seed struct {
	VerifiedProducers []string
	Requests          []model.VerificationRequest
	Users             []model.AdminUser
	Chats             []model.Chat
	Messages          map[int][]model.ChatMessage
}

// AppState is the explicit replacement for per-screen component state.
type AppState struct {
	mu sync.RWMutex

	cart     cart.Cart
	liked    []string
	verified []string
	notes    map[model.Audience][]string
	requests []model.VerificationRequest
	users    []model.AdminUser
	chats    []model.Chat
	messages map[int][]model.ChatMessage
	now      func() time.Time
	newID    func() string
}

// Option customizes an AppState.
type Option func(*AppState)

// WithClock overrides time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *AppState) { s.now = now }
}

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *AppState) { s.newID = gen }
}

// NewAppState creates state from seed. Seed slices are copied.
func NewAppState(seed Seed, opts ...Option) *AppState {
	verified := append([]string(nil), seed.VerifiedProducers...)
	if len(verified) == 0 {
		verified = []string{InitialVerifiedProducer}
	}
	s := &AppState{
		verified: verified,
		notes: map[model.Audience][]string{
			model.AudienceProducers: nil,
			model.AudienceArtists:   nil,
		},
		requests: append([]model.VerificationRequest(nil), seed.Requests...),
		users:    append([]model.AdminUser(nil), seed.Users...),
		chats:    append([]model.Chat(nil), seed.Chats...),
		messages: make(map[int][]model.ChatMessage, len(seed.Messages)),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for id, msgs := range seed.Messages {
		s.messages[id] = append([]model.ChatMessage(nil), msgs...)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- cart ---

// CartItems returns the cart contents.
func (s *AppState) CartItems() []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Items()
}

// CartTotal returns the sum of fixed license prices in the cart.
func (s *AppState) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Total()
}

// AddToCart adds beat under license t. Duplicates are a no-op.
func (s *AppState) AddToCart(beat model.Beat, t model.LicenseType) (model.CartItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Add(beat, t)
}

// RemoveFromCart removes an item by id.
func (s *AppState) RemoveFromCart(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Remove(id)
}

// ClearCart empties the cart.
func (s *AppState) ClearCart() {
	s.mu.Lock()
	s.cart.Clear()
	s.mu.Unlock()
}

// --- likes ---

// ToggleLike flips the like on a beat and reports whether it is now liked.
func (s *AppState) ToggleLike(beatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range s.liked {
		if id == beatID {
			s.liked = append(s.liked[:i], s.liked[i+1:]...)
			return false
		}
	}
	s.liked = append(s.liked, beatID)
	return true
}

// LikedIDs returns liked beat ids in the order they were liked.
func (s *AppState) LikedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.liked...)
}

// --- verification ---

// VerifiedProducers returns verified producer names.
func (s *AppState) VerifiedProducers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.verified...)
}

// IsVerified reports whether producer carries the verified badge.
func (s *AppState) IsVerified(producer string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.verified {
		if p == producer {
			return true
		}
	}
	return false
}

// Requests returns pending verification requests.
func (s *AppState) Requests() []model.VerificationRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.VerificationRequest(nil), s.requests...)
}

// SubmitRequest queues a verification request from a producer.
func (s *AppState) SubmitRequest(producer, email, socialLink string) model.VerificationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	req := model.VerificationRequest{
		ID:           s.newID(),
		ProducerName: producer,
		Email:        email,
		SocialLink:   socialLink,
		Status:       model.VerificationPending,
		Date:         s.now().Format("2006-01-02"),
	}
	s.requests = append(s.requests, req)
	return req
}

// takeRequest removes a request; the caller holds the write lock.
func (s *AppState) takeRequest(id string) (model.VerificationRequest, error) {
	for i, r := range s.requests {
		if r.ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return r, nil
		}
	}
	return model.VerificationRequest{}, fmt.Errorf("%w: %s", ErrRequestNotFound, id)
}

// Approve verifies the requesting producer, removes the request and
// notifies producers.
func (s *AppState) Approve(id string) (model.VerificationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, err := s.takeRequest(id)
	if err != nil {
		return req, err
	}
	req.Status = model.VerificationApproved
	s.verified = append(s.verified, req.ProducerName)
	msg := fmt.Sprintf(`Congratulations! Your profile "%s" has been verified.`, req.ProducerName)
	s.notes[model.AudienceProducers] = prepend(s.notes[model.AudienceProducers], msg)
	return req, nil
}

// Reject removes a request without verifying anyone.
func (s *AppState) Reject(id string) (model.VerificationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, err := s.takeRequest(id)
	if err != nil {
		return req, err
	}
	req.Status = model.VerificationRejected
	return req, nil
}

// Users returns the admin user list.
func (s *AppState) Users() []model.AdminUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.AdminUser(nil), s.users...)
}

// --- notifications ---

// ParseAudience validates an audience name.
func ParseAudience(v string) (model.Audience, error) {
	switch a := model.Audience(strings.ToLower(strings.TrimSpace(v))); a {
	case model.AudienceProducers, model.AudienceArtists:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAudience, v)
}

// Notify broadcasts msg to an audience. Newest notifications come first.
func (s *AppState) Notify(audience model.Audience, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return ErrEmptyMessage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[audience]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAudience, audience)
	}
	s.notes[audience] = prepend(s.notes[audience], msg)
	return nil
}

// Notifications lists an audience's notifications, newest first.
func (s *AppState) Notifications(audience model.Audience) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.notes[audience]...)
}

func prepend(list []string, v string) []string {
	return append([]string{v}, list...)
}

// --- messaging ---

// Chats returns the conversation list.
func (s *AppState) Chats() []model.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Chat(nil), s.chats...)
}

func (s *AppState) chatIndex(id int) int {
	for i, c := range s.chats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Messages returns a chat's thread in send order.
func (s *AppState) Messages(chatID int) ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.chatIndex(chatID) < 0 {
		return nil, fmt.Errorf("%w: %d", ErrChatNotFound, chatID)
	}
	return append([]model.ChatMessage(nil), s.messages[chatID]...), nil
}

// SendMessage appends a message from "me" and updates the chat preview.
// Blank text is rejected with ErrEmptyMessage and nothing is stored.
func (s *AppState) SendMessage(chatID int, text string) (model.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return model.ChatMessage{}, ErrEmptyMessage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.chatIndex(chatID)
	if idx < 0 {
		return model.ChatMessage{}, fmt.Errorf("%w: %d", ErrChatNotFound, chatID)
	}
	now := s.now()
	msg := model.ChatMessage{
		ID:     s.newID(),
		ChatID: chatID,
		Sender: "me",
		Text:   text,
		Time:   now.Format("03:04 PM"),
		SentAt: now,
	}
	s.messages[chatID] = append(s.messages[chatID], msg)
	s.chats[idx].LastMessage = text
	s.chats[idx].Time = "now"
	s.chats[idx].Unread = 0
	return msg, nil
}
