package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"restopos-api/internal/models"
	"restopos-api/internal/repositories"
	"restopos-api/internal/storage"
)

type MenuService struct {
	profiles repositories.Profiles
	menu     repositories.Menu
	tables   repositories.Tables
	images   storage.ImageSigner // nil leaves image paths untouched
	expiry   time.Duration
	log      *zap.Logger
}

func NewMenuService(p repositories.Profiles, m repositories.Menu, t repositories.Tables, images storage.ImageSigner, expiry time.Duration, log *zap.Logger) *MenuService {
	return &MenuService{profiles: p, menu: m, tables: t, images: images, expiry: expiry, log: log}
}

// GetPOSData returns what the till needs to boot: menu, floor and profile.
func (s *MenuService) GetPOSData(ctx context.Context, user string) (*models.POSData, error) {
	profile, err := assignedProfile(ctx, s.profiles, user)
	if err != nil {
		return nil, err
	}

	items, err := s.menu.ListSalesItems(ctx, profile.SellingPriceList)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	for i := range items {
		s.signImage(ctx, &items[i])
	}

	tables, err := s.tables.ListTables(ctx, profile.Company)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	return &models.POSData{
		Items:           items,
		Tables:          tables,
		ProfileSettings: profile.Settings(),
	}, nil
}

// GetItemByBarcode resolves a scanned code, falling back to treating it as an
// item code. It returns nil, nil when nothing matches.
func (s *MenuService) GetItemByBarcode(ctx context.Context, user, barcode string) (*models.Item, error) {
	profile, err := assignedProfile(ctx, s.profiles, user)
	if err != nil {
		return nil, err
	}

	code, err := s.menu.FindItemCodeByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("find barcode: %w", err)
	}
	if code == "" {
		code = barcode
	}

	item, err := s.menu.GetItem(ctx, code, profile.SellingPriceList)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item != nil {
		s.signImage(ctx, item)
	}
	return item, nil
}

// signImage swaps a bucket key for a presigned URL. Absolute URLs and
// site-relative paths are served elsewhere and kept as they are.
func (s *MenuService) signImage(ctx context.Context, item *models.Item) {
	if s.images == nil || item.Image == nil {
		return
	}
	key := *item.Image
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "://") {
		return
	}

	u, err := s.images.PresignGet(ctx, key, s.expiry)
	if err != nil {
		s.log.Warn("presign item image failed", zap.String("item_code", item.ItemCode), zap.Error(err))
		return
	}
	item.Image = &u
}
