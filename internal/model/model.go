package model

import (
	"strings"
	"time"
)

// Promotion is a wrestling promotion from the cagematch promotions index.
// CagematchID is the site's numeric id; it is nil for promotions created
// lazily from a name reference (e.g. a wrestler's debut promotion) before
// the promotions list has been ingested for them.
type Promotion struct {
	ID            int64
	Name          string
	Country       string
	YearFounded   *int
	YearDisbanded *int
	IsActive      bool
	YearsActive   *int
	CagematchID   *int64
}

type Wrestler struct {
	ID          int64
	Name        string // dedup key, unique
	PromotionID *int64
	HeightCM    *int
	WeightKG    *int
	Age         *int
	Debut       *time.Time
	IsActive    bool
	YearsActive *int
	Retirement  *time.Time
	CagematchID int64
	TitleReigns int
	TitlesWon   int
	IsChampion  bool
}

// Gimmick is an alternate persona a wrestler has performed under.
// DateCreated and LastSeen are the earliest and latest appearances in
// that persona's match history.
type Gimmick struct {
	ID               int64
	WrestlerID       int64
	Name             string
	DebutPromotionID *int64
	IsDefault        bool
	DateCreated      *time.Time
	LastSeen         *time.Time
}

// IsDefaultFor reports whether the gimmick name matches the wrestler's
// current name, ignoring case and surrounding whitespace.
func (g *Gimmick) IsDefaultFor(wrestlerName string) bool {
	return strings.EqualFold(strings.TrimSpace(g.Name), strings.TrimSpace(wrestlerName))
}
