package menu

type MenuItem struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	Category       string  `json:"category"`
	BasePriceCents int64   `json:"base_price_cents"`
	ImageURL       *string `json:"image_url,omitempty"`
	IsActive       bool    `json:"is_active"`
}

// BranchMenuItem is a menu item as seen from one branch: the effective
// price (branch override or base) and the branch availability flag.
type BranchMenuItem struct {
	MenuItem
	PriceCents  int64 `json:"price_cents"`
	IsAvailable bool  `json:"is_available"`
}

type CreateItemInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    *string `json:"description"`
	Category       string  `json:"category" binding:"required"`
	BasePriceCents int64   `json:"base_price_cents" binding:"required,gt=0"`
	ImageURL       *string `json:"image_url"`
}

type UpdateItemInput struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Category       *string `json:"category"`
	BasePriceCents *int64  `json:"base_price_cents"`
	ImageURL       *string `json:"image_url"`
	IsActive       *bool   `json:"is_active"`
}

// BranchPriceInput sets or clears a branch-specific override and flips
// availability. A nil PriceCents means the base price applies.
type BranchPriceInput struct {
	MenuItemID  uint   `json:"menu_item_id" binding:"required"`
	PriceCents  *int64 `json:"price_cents"`
	IsAvailable bool   `json:"is_available"`
}
