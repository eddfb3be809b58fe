package services

import (
	"context"
	"errors"
	"strings"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/repos"
	"harvestdesk/internal/store"
)

// Mode selects how a dangling reference is reported.
type Mode int

const (
	// Soft is for read views: the caller gets ErrUnresolved and substitutes a
	// placeholder.
	Soft Mode = iota
	// Hard is for writes: the caller gets ErrInvalidReference and rejects the
	// write.
	Hard
)

type ProductRef struct {
	CategoryID string
	ItemID     string
}

func (r ProductRef) String() string { return r.CategoryID + "/" + r.ItemID }

// ParseProductRef splits "categoryId/itemId". Anything other than exactly two
// usable segments is malformed.
func ParseProductRef(ref string) (ProductRef, bool) {
	parts := strings.Split(strings.TrimSpace(ref), "/")
	if len(parts) != 2 || !store.ValidKey(parts[0]) || !store.ValidKey(parts[1]) {
		return ProductRef{}, false
	}
	return ProductRef{CategoryID: parts[0], ItemID: parts[1]}, true
}

type Refs struct {
	Items *repos.ItemRepo
	Users *repos.UserRepo
}

func NewRefs(items *repos.ItemRepo, users *repos.UserRepo) *Refs {
	return &Refs{Items: items, Users: users}
}

func unresolved(entity, ref string, mode Mode) error {
	if mode == Hard {
		return &domain.Error{Kind: domain.ErrInvalidReference, Entity: entity, ID: ref, Msg: "reference does not resolve"}
	}
	return &domain.Error{Kind: domain.ErrUnresolved, Entity: entity, ID: ref}
}

// ResolveProductRef fetches the item a product reference points at. Backend
// failures come back as they are in both modes.
func (r *Refs) ResolveProductRef(ctx context.Context, ref string, mode Mode) (domain.Item, error) {
	pr, ok := ParseProductRef(ref)
	if !ok {
		return domain.Item{}, unresolved("item", ref, mode)
	}
	it, found, err := r.Items.Get(ctx, pr.CategoryID, pr.ItemID)
	if err != nil && !errors.Is(err, domain.ErrValidation) {
		return domain.Item{}, err
	}
	if !found {
		return domain.Item{}, unresolved("item", ref, mode)
	}
	// A stored item that fails to decode still exists.
	return it, nil
}

// ResolveUser fetches the owner of an order.
func (r *Refs) ResolveUser(ctx context.Context, userID string, mode Mode) (domain.User, error) {
	u, found, err := r.Users.ByID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrValidation) {
		return domain.User{}, err
	}
	if !found {
		return domain.User{}, unresolved("user", userID, mode)
	}
	return u, nil
}
