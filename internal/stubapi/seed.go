package stubapi

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
)

// Seed loads a small demo catalog plus an admin account
// (admin@example.com / admin123).
func (s *Server) Seed() error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	maxUses := 100

	s.mu.Lock()
	defer s.mu.Unlock()

	admin := &userRecord{
		Profile: domain.Profile{
			ID:       uuid.NewString(),
			Email:    "admin@example.com",
			Role:     domain.RoleAdmin,
			FullName: "Store Admin",
		},
		PasswordHash: adminHash,
	}
	s.users[admin.ID] = admin

	s.products = []domain.Product{
		{
			ID:          uuid.NewString(),
			Name:        "Velvet Scrunchie Set",
			Slug:        "velvet-scrunchie-set",
			Description: "Set of five velvet scrunchies in muted tones.",
			Price:       499,
			Stock:       40,
			Images:      []string{"/images/velvet-scrunchie-set.jpg"},
			Category:    "scrunchies",
			IsActive:    true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Pearl Hair Clip",
			Slug:        "pearl-hair-clip",
			Description: "Oversized clip with faux pearls.",
			Price:       299,
			Stock:       25,
			Images:      []string{"/images/pearl-hair-clip.jpg"},
			Category:    "clips",
			IsActive:    true,
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Silk Headband",
			Slug:        "silk-headband",
			Description: "Knotted headband in mulberry silk.",
			Price:       799,
			Stock:       15,
			Images:      []string{"/images/silk-headband.jpg"},
			Category:    "headbands",
			IsActive:    true,
			CreatedAt:   now,
		},
	}

	s.discounts = []domain.DiscountCode{
		{
			ID:             uuid.NewString(),
			Code:           "WELCOME10",
			DiscountType:   domain.DiscountTypePercentage,
			DiscountValue:  10,
			MinOrderAmount: 500,
			MaxUses:        &maxUses,
			IsActive:       true,
			ValidFrom:      now,
			CreatedAt:      now,
		},
		{
			ID:             uuid.NewString(),
			Code:           "FLAT100",
			DiscountType:   domain.DiscountTypeFixed,
			DiscountValue:  100,
			MinOrderAmount: 999,
			IsActive:       true,
			ValidFrom:      now,
			CreatedAt:      now,
		},
	}

	s.popups = []domain.Popup{
		{
			ID:              uuid.NewString(),
			Title:           "Welcome offer",
			Message:         "Get 10% off your first order with WELCOME10.",
			DiscountCode:    "WELCOME10",
			IsActive:        true,
			DisplayDuration: 5000,
			CreatedAt:       now,
		},
		{
			ID:              uuid.NewString(),
			Title:           "Free shipping",
			Message:         "Free shipping on orders above 999.",
			IsActive:        true,
			DisplayDuration: 4000,
			CreatedAt:       now,
		},
	}
	return nil
}
