// Package auth decides where a signed-in user lands. There is no credential
// check: the storefront's sign-in is a routing demo.
package auth

import (
	"errors"
	"strings"
)

// Roles
const (
	RoleArtist   = "artist"
	RoleProducer = "producer"
)

// Landing routes
const (
	ArtistHome   = "/artist"
	ProducerHome = "/dash"
)

// ErrUnknownRole 注册时角色无效
var ErrUnknownRole = errors.New("unknown role")

// RouteForLogin picks the dashboard for a login: emails mentioning "artist"
// land on the artist dashboard, everyone else on the producer dashboard.
func RouteForLogin(email string) string {
	if strings.Contains(email, RoleArtist) {
		return ArtistHome
	}
	return ProducerHome
}

// RouteForRegister routes a new account by its chosen role. An empty role
// defaults to artist, matching the registration form.
func RouteForRegister(role string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleProducer:
		return ProducerHome, nil
	case RoleArtist, "":
		return ArtistHome, nil
	default:
		return "", ErrUnknownRole
	}
}
