package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"beatwave/model"
)

func testSeed() Seed {
	return Seed{
		Requests: []model.VerificationRequest{
			{ID: "v1", ProducerName: "CyberSound", Status: model.VerificationPending},
			{ID: "v2", ProducerName: "NewBeatMaker", Status: model.VerificationPending},
		},
		Chats: []model.Chat{
			{ID: 1, User: "CyberSound", LastMessage: "Yo", Unread: 2},
			{ID: 2, User: "Drake Fan 22"},
		},
		Messages: map[int][]model.ChatMessage{
			1: {{ID: "1", ChatID: 1, Sender: "them", Text: "Yo"}},
		},
	}
}

func newTestState() *AppState {
	n := 0
	return NewAppState(testSeed(),
		WithClock(func() time.Time { return time.Date(2024, 5, 1, 14, 7, 0, 0, time.UTC) }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
}

func TestApproveVerifiesAndNotifies(t *testing.T) {
	s := newTestState()
	if !s.IsVerified(InitialVerifiedProducer) {
		t.Fatal("Metro Boomin starts verified")
	}

	s.Notify(model.AudienceProducers, "older")
	req, err := s.Approve("v1")
	if err != nil {
		t.Fatal(err)
	}
	if req.Status != model.VerificationApproved {
		t.Errorf("status = %s", req.Status)
	}
	if !s.IsVerified("CyberSound") {
		t.Fatal("approved producer should be verified")
	}
	notes := s.Notifications(model.AudienceProducers)
	want := `Congratulations! Your profile "CyberSound" has been verified.`
	if len(notes) != 2 || notes[0] != want || notes[1] != "older" {
		t.Fatalf("producer notifications = %q", notes)
	}
	if len(s.Notifications(model.AudienceArtists)) != 0 {
		t.Fatal("artists must not be notified of verification")
	}
	if reqs := s.Requests(); len(reqs) != 1 || reqs[0].ID != "v2" {
		t.Fatalf("pending = %+v", reqs)
	}
	if _, err := s.Approve("v1"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("second approve error = %v", err)
	}
}

func TestRejectRemovesRequest(t *testing.T) {
	s := newTestState()
	if _, err := s.Reject("v2"); err != nil {
		t.Fatal(err)
	}
	if s.IsVerified("NewBeatMaker") {
		t.Fatal("rejected producer must not be verified")
	}
	if len(s.Requests()) != 1 {
		t.Fatal("request should be removed")
	}
	if len(s.Notifications(model.AudienceProducers)) != 0 {
		t.Fatal("reject sends no notification")
	}
	if _, err := s.Reject("zzz"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("unknown reject error = %v", err)
	}
}

func TestSubmitRequest(t *testing.T) {
	s := newTestState()
	req := s.SubmitRequest("Fresh", "f@x.com", "x.com/fresh")
	if req.ID != "id-1" || req.Date != "2024-05-01" || req.Status != model.VerificationPending {
		t.Fatalf("request = %+v", req)
	}
	if _, err := s.Approve(req.ID); err != nil {
		t.Fatal(err)
	}
}

func TestNotify(t *testing.T) {
	s := newTestState()
	s.Notify(model.AudienceArtists, "first")
	s.Notify(model.AudienceArtists, "second")
	if got := s.Notifications(model.AudienceArtists); len(got) != 2 || got[0] != "second" {
		t.Fatalf("artists = %q", got)
	}
	if err := s.Notify("fans", "hi"); !errors.Is(err, ErrUnknownAudience) {
		t.Fatalf("unknown audience error = %v", err)
	}
	if err := s.Notify(model.AudienceArtists, "  "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("blank message error = %v", err)
	}

	if a, err := ParseAudience(" Producers "); err != nil || a != model.AudienceProducers {
		t.Fatalf("ParseAudience = %v, %v", a, err)
	}
	if _, err := ParseAudience("labels"); err == nil {
		t.Fatal("expected an error for labels")
	}
}

func TestToggleLike(t *testing.T) {
	s := newTestState()
	if !s.ToggleLike("3") || !s.ToggleLike("1") {
		t.Fatal("first toggle likes")
	}
	if s.ToggleLike("3") {
		t.Fatal("second toggle unlikes")
	}
	if got := s.LikedIDs(); len(got) != 1 || got[0] != "1" {
		t.Fatalf("liked = %v", got)
	}
}

func TestCartThroughState(t *testing.T) {
	s := newTestState()
	beat := model.Beat{ID: "4"}
	if _, added, err := s.AddToCart(beat, model.LicenseUnlimited); err != nil || !added {
		t.Fatalf("add: %v %v", added, err)
	}
	s.AddToCart(beat, model.LicenseUnlimited)
	if len(s.CartItems()) != 1 || s.CartTotal() != 80 {
		t.Fatalf("cart = %+v", s.CartItems())
	}
	if err := s.RemoveFromCart("4-UNLIMITED"); err != nil {
		t.Fatal(err)
	}
	s.AddToCart(beat, model.LicenseMP3)
	s.ClearCart()
	if len(s.CartItems()) != 0 {
		t.Fatal("ClearCart")
	}
}

func TestSendMessage(t *testing.T) {
	s := newTestState()
	msg, err := s.SendMessage(1, "Got them, thanks")
	if err != nil {
		t.Fatal(err)
	}
	if msg.Sender != "me" || msg.Time != "02:07 PM" || msg.ID != "id-1" {
		t.Fatalf("message = %+v", msg)
	}
	thread, _ := s.Messages(1)
	if len(thread) != 2 || thread[1].Text != "Got them, thanks" {
		t.Fatalf("thread = %+v", thread)
	}
	chat := s.Chats()[0]
	if chat.LastMessage != "Got them, thanks" || chat.Unread != 0 {
		t.Fatalf("chat preview = %+v", chat)
	}

	if _, err := s.SendMessage(1, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("blank error = %v", err)
	}
	if thread, _ := s.Messages(1); len(thread) != 2 {
		t.Fatal("blank messages must not be stored")
	}
	if _, err := s.SendMessage(9, "hi"); !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("unknown chat error = %v", err)
	}
	if thread, err := s.Messages(2); err != nil || len(thread) != 0 {
		t.Fatalf("empty thread = %v, %v", thread, err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestState()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.ToggleLike(fmt.Sprint(i % 4))
			s.Notify(model.AudienceArtists, "drop")
			s.AddToCart(model.Beat{ID: fmt.Sprint(i % 3)}, model.LicenseWAV)
			_ = s.Notifications(model.AudienceArtists)
		}(i)
	}
	wg.Wait()
	if got := len(s.Notifications(model.AudienceArtists)); got != 20 {
		t.Fatalf("notifications = %d, want 20", got)
	}
	if got := len(s.CartItems()); got != 3 {
		t.Fatalf("cart items = %d, want 3", got)
	}
}
