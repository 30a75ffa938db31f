package storage

import (
	"context"

	"github.com/grapplehold/ringdex/internal/model"
)

type Repository interface {
	Init(ctx context.Context) error

	// SavePromotions inserts promotions that are not yet stored, keyed
	// by cagematch id, and returns how many were created.
	SavePromotions(ctx context.Context, promotions []model.Promotion) (int, error)
	// GetOrCreatePromotion returns the promotion with the exact name,
	// creating it first if absent.
	GetOrCreatePromotion(ctx context.Context, name string) (*model.Promotion, error)
	ListPromotions(ctx context.Context) ([]model.Promotion, error)

	// SaveWrestler inserts w unless a wrestler with the same name
	// exists; the bool reports whether a row was created.
	SaveWrestler(ctx context.Context, w *model.Wrestler) (bool, error)
	GetWrestlerByName(ctx context.Context, name string) (*model.Wrestler, error)
	GetWrestlerByCagematchID(ctx context.Context, id int64) (*model.Wrestler, error)

	// SaveGimmick inserts g unless the (wrestler, gimmick name) pair
	// exists; the bool reports whether a row was created.
	SaveGimmick(ctx context.Context, g *model.Gimmick) (bool, error)

	Close() error
}
