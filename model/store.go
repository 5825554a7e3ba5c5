package model

import "time"

// LicenseType identifies a license tier.
type LicenseType string

const (
	LicenseMP3       LicenseType = "MP3"
	LicenseWAV       LicenseType = "WAV"
	LicenseUnlimited LicenseType = "UNLIMITED"
	LicenseExclusive LicenseType = "EXCLUSIVE"
)

// License is a purchasable usage right for a beat. A nil Price means the
// license is negotiated ("Make an Offer").
type License struct {
	Type     LicenseType `json:"type"`
	Name     string      `json:"name"`
	Price    *float64    `json:"price"`
	Features []string    `json:"features"`
}

// IsOffer reports whether the license has no fixed price.
func (l License) IsOffer() bool {
	return l.Price == nil
}

// CartItem 购物车条目，ID 为 beatID-licenseType
type CartItem struct {
	ID      string  `json:"id"`
	Beat    Beat    `json:"beat"`
	License License `json:"license"`
}

// Playlist 歌单
type Playlist struct {
	ID      string     `json:"id" toml:"id"`
	Title   string     `json:"title" toml:"title"`
	Author  string     `json:"author" toml:"author"`
	Cover   string     `json:"cover" toml:"cover"`
	BeatIDs []string   `json:"-" toml:"beats"`
	Beats   []Beat     `json:"beats" toml:"-"`
	Tags    StringList `json:"tags" toml:"tags"`
}

// SoundKitType 音色包类型
type SoundKitType string

const (
	KitDrum     SoundKitType = "Drum Kit"
	KitLoop     SoundKitType = "Loop Kit"
	KitSamples  SoundKitType = "Samples"
	KitMidi     SoundKitType = "Midi Kit"
	KitPresets  SoundKitType = "Presets"
	KitOneShots SoundKitType = "One Shots"
)

// SoundKit 音色包
type SoundKit struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Producer     string       `json:"producer"`
	Cover        string       `json:"cover"`
	Price        float64      `json:"price"`
	Description  string       `json:"description"`
	PreviewTrack Beat         `json:"previewTrack"`
	Type         SoundKitType `json:"type"`
}

// Service 制作服务（混音、定制等）
type Service struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Provider     string  `json:"provider"`
	Cover        string  `json:"cover"`
	PriceFrom    float64 `json:"priceFrom"`
	Description  string  `json:"description"`
	ExampleTrack Beat    `json:"exampleTrack"`
}

// Verification request states
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// VerificationRequest 制作人认证申请
type VerificationRequest struct {
	ID           string `json:"id"`
	ProducerName string `json:"producerName"`
	Email        string `json:"email"`
	SocialLink   string `json:"socialLink"`
	Status       string `json:"status"`
	Date         string `json:"date"`
}

// Audience 通知对象
type Audience string

const (
	AudienceProducers Audience = "producers"
	AudienceArtists   Audience = "artists"
)

// Chat 会话列表条目
type Chat struct {
	ID          int    `json:"id"`
	User        string `json:"user"`
	Avatar      string `json:"avatar"`
	LastMessage string `json:"lastMessage"`
	Time        string `json:"time"`
	Unread      int    `json:"unread"`
	Online      bool   `json:"online"`
	Role        string `json:"role"`
}

// ChatMessage 聊天消息
type ChatMessage struct {
	ID     string    `json:"id"`
	ChatID int       `json:"chatId"`
	Sender string    `json:"sender"` // "me" or "them"
	Text   string    `json:"text"`
	Time   string    `json:"time"`
	SentAt time.Time `json:"sentAt"`
}

// AdminUser 管理后台用户列表条目
type AdminUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"` // producer, artist
	Status   string `json:"status"`
	Joined   string `json:"joined"`
	Earnings string `json:"earnings,omitempty"`
	Spent    string `json:"spent,omitempty"`
}
