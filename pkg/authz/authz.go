package authz

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

var (
	ErrUnregistered = errors.New("authz: permission not registered")
	ErrBlank        = errors.New("authz: value must not be blank")
)

// Authorizer answers permission checks for users and groups. Checks against
// permissions that were never registered are always denied.
type Authorizer struct {
	mu         sync.RWMutex
	enforcer   *casbin.Enforcer
	registered map[string]struct{}
}

// New returns an in-memory Authorizer using Model.
func New() (*Authorizer, error) {
	m, err := model.NewModelFromString(Model)
	if err != nil {
		return nil, fmt.Errorf("authz: model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: enforcer: %w", err)
	}
	return &Authorizer{enforcer: enforcer, registered: map[string]struct{}{}}, nil
}

// NewFromFiles loads the model and a CSV policy from disk. Grants made later
// are kept in memory; call SavePolicy to write them back.
func NewFromFiles(modelPath, policyPath string) (*Authorizer, error) {
	enforcer, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, fmt.Errorf("authz: enforcer: %w", err)
	}
	enforcer.SetAdapter(fileadapter.NewAdapter(policyPath))
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz: load policy: %w", err)
	}
	return &Authorizer{enforcer: enforcer, registered: map[string]struct{}{}}, nil
}

// SavePolicy persists the current policy through the configured adapter.
func (a *Authorizer) SavePolicy() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enforcer.SavePolicy()
}

// RegisterPermission makes perm checkable. Registering twice is a no-op.
func (a *Authorizer) RegisterPermission(perm string) error {
	perm, err := normalize(perm)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.registered[perm] = struct{}{}
	a.mu.Unlock()
	return nil
}

// Registered reports whether perm was registered.
func (a *Authorizer) Registered(perm string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.registered[strings.ToLower(strings.TrimSpace(perm))]
	return ok
}

// Grant gives userID the registered permission perm.
func (a *Authorizer) Grant(userID, perm string) error {
	return a.addPolicy(UserSubject, userID, perm)
}

// Revoke removes a direct grant of perm from userID.
func (a *Authorizer) Revoke(userID, perm string) error {
	return a.removePolicy(UserSubject, userID, perm)
}

// GrantGroup gives every member of group the registered permission perm.
func (a *Authorizer) GrantGroup(group, perm string) error {
	return a.addPolicy(GroupSubject, group, perm)
}

// RevokeGroup removes perm from group.
func (a *Authorizer) RevokeGroup(group, perm string) error {
	return a.removePolicy(GroupSubject, group, perm)
}

// AddToGroup makes userID a member of group.
func (a *Authorizer) AddToGroup(userID, group string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(group) == "" {
		return ErrBlank
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.enforcer.AddGroupingPolicy(UserSubject(userID), GroupSubject(group))
	return err
}

// RemoveFromGroup removes userID from group.
func (a *Authorizer) RemoveFromGroup(userID, group string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.enforcer.RemoveGroupingPolicy(UserSubject(userID), GroupSubject(group))
	return err
}

// UserHasPermission reports whether userID holds perm directly, through a
// group, or through the default group. Unregistered permissions, blank users
// and enforcer errors deny.
func (a *Authorizer) UserHasPermission(userID, perm string) bool {
	if a == nil || strings.TrimSpace(userID) == "" {
		return false
	}
	perm = strings.ToLower(strings.TrimSpace(perm))
	a.mu.RLock()
	defer a.mu.RUnlock()
	if _, ok := a.registered[perm]; !ok {
		return false
	}
	ok, err := a.enforcer.Enforce(UserSubject(userID), perm)
	return err == nil && ok
}

// Permissions returns every permission granted to userID, directly or
// through groups, that is registered.
func (a *Authorizer) Permissions(userID string) []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := []string{}
	for perm := range a.registered {
		if ok, err := a.enforcer.Enforce(UserSubject(userID), perm); err == nil && ok {
			out = append(out, perm)
		}
	}
	sort.Strings(out)
	return out
}

func (a *Authorizer) addPolicy(subject func(string) string, who, perm string) error {
	perm, err := a.checked(who, perm)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err = a.enforcer.AddPolicy(subject(who), perm)
	return err
}

func (a *Authorizer) removePolicy(subject func(string) string, who, perm string) error {
	perm, err := normalize(perm)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err = a.enforcer.RemovePolicy(subject(who), perm)
	return err
}

func (a *Authorizer) checked(who, perm string) (string, error) {
	if strings.TrimSpace(who) == "" {
		return "", ErrBlank
	}
	perm, err := normalize(perm)
	if err != nil {
		return "", err
	}
	if !a.Registered(perm) {
		return "", fmt.Errorf("%w: %s", ErrUnregistered, perm)
	}
	return perm, nil
}

func normalize(perm string) (string, error) {
	perm = strings.ToLower(strings.TrimSpace(perm))
	if perm == "" {
		return "", ErrBlank
	}
	return perm, nil
}
