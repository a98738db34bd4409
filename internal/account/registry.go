// Package account stores the signed-in GitHub identities, tracks which
// one is active, and scopes the local cache namespace to it. All state
// lives in the shared key-value store under fixed keys; reads fail soft
// and writes either fully succeed or are silently dropped.
package account

import (
	"time"

	"github.com/friuns/vibehub/internal/cache"
)

const (
	accountsKey      = "accounts"
	activeAccountKey = "active-account"

	// Legacy single-account slots, read only by MigrateLegacy.
	legacyTokenKey = "github-token"
	legacyUserKey  = "github-user"
)

// Profile is the displayable part of a GitHub identity.
type Profile struct {
	Login       string `json:"login"`
	AvatarURL   string `json:"avatar_url"`
	DisplayName string `json:"display_name"`
}

// Account is one signed-in identity. ID is the GitHub login and is
// unique within the registry.
type Account struct {
	ID      string  `json:"id"`
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
	AddedAt int64   `json:"added_at"` // epoch millis
}

// Registry manages the persisted account list and active pointer.
type Registry struct {
	store *cache.Store
	now   func() time.Time
}

// NewRegistry returns a registry backed by the given store.
func NewRegistry(s *cache.Store) *Registry {
	return &Registry{store: s, now: time.Now}
}

// List returns all known accounts in storage order.
func (r *Registry) List() []Account {
	accounts, _ := cache.Get[[]Account](r.store, accountsKey)
	return accounts
}

func (r *Registry) save(accounts []Account) {
	cache.Set(r.store, accountsKey, accounts)
}

// AddOrUpdate upserts an account by profile login. Re-adding an existing
// login refreshes the token and profile in place and preserves AddedAt.
// The first account ever added becomes active.
func (r *Registry) AddOrUpdate(token string, profile Profile) Account {
	accounts := r.List()
	for i := range accounts {
		if accounts[i].ID == profile.Login {
			accounts[i].Token = token
			accounts[i].Profile = profile
			r.save(accounts)
			return accounts[i]
		}
	}

	acct := Account{
		ID:      profile.Login,
		Token:   token,
		Profile: profile,
		AddedAt: r.now().UnixMilli(),
	}
	accounts = append(accounts, acct)
	r.save(accounts)

	if _, ok := r.activeID(); !ok {
		cache.Set(r.store, activeAccountKey, acct.ID)
	}
	return acct
}

func (r *Registry) activeID() (string, bool) {
	id, ok := cache.Get[string](r.store, activeAccountKey)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Active resolves the active account. If the pointer is unset or
// dangling but accounts exist, the first account in storage order wins.
func (r *Registry) Active() (Account, bool) {
	accounts := r.List()
	if len(accounts) == 0 {
		return Account{}, false
	}
	if id, ok := r.activeID(); ok {
		for _, a := range accounts {
			if a.ID == id {
				return a, true
			}
		}
	}
	return accounts[0], true
}

// SetActive points the active pointer at id. Returns false and changes
// nothing if no such account exists.
func (r *Registry) SetActive(id string) bool {
	for _, a := range r.List() {
		if a.ID == id {
			cache.Set(r.store, activeAccountKey, id)
			return true
		}
	}
	return false
}

// Remove deletes the account with the given id. If it was active, the
// pointer is reassigned to a remaining account or cleared, never left
// dangling. Every cache entry namespaced to the id is deleted.
func (r *Registry) Remove(id string) {
	accounts := r.List()
	var kept []Account
	for _, a := range accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	r.save(kept)

	if active, ok := r.activeID(); ok && active == id {
		if len(kept) > 0 {
			cache.Set(r.store, activeAccountKey, kept[0].ID)
		} else {
			r.store.Delete(activeAccountKey)
		}
	}

	cache.ClearAccount(r.store, id)
}

// MigrateLegacy converts the pre-multi-account storage slots into the
// first registry entry. Idempotent: it no-ops when the registry already
// has accounts or the legacy slots are empty, and the slots are deleted
// once converted.
func (r *Registry) MigrateLegacy() {
	if len(r.List()) > 0 {
		return
	}
	token, ok := cache.Get[string](r.store, legacyTokenKey)
	if !ok || token == "" {
		return
	}
	profile, ok := cache.Get[Profile](r.store, legacyUserKey)
	if !ok || profile.Login == "" {
		return
	}

	r.AddOrUpdate(token, profile)
	r.store.Delete(legacyTokenKey)
	r.store.Delete(legacyUserKey)
}
