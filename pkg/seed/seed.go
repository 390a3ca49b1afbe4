package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/pkg/config"
	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
	"github.com/fremed/fremed-backend/pkg/logger"
	"github.com/fremed/fremed-backend/pkg/security"
)

// Run populates the in-memory store with the demo dataset. It is a no-op when
// users already exist, so repeated boots against a shared DSN stay idempotent.
func Run(ctx context.Context, db *gorm.DB, cfg *config.Config, log *logger.Logger) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	var userCount int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		usersCreated, err := seedUsers(tx, cfg)
		if err != nil {
			return err
		}
		categories, err := seedCategories(tx)
		if err != nil {
			return err
		}
		products, err := seedProducts(tx, categories)
		if err != nil {
			return err
		}
		if err := seedPromotions(tx, products, usersCreated[0].ID); err != nil {
			return err
		}
		if err := seedCertificates(tx, products); err != nil {
			return err
		}
		if err := seedOrder(tx, products, usersCreated[0]); err != nil {
			return err
		}

		log.Info(ctx, "seeded demo dataset")
		return nil
	})
}

func seedUsers(tx *gorm.DB, cfg *config.Config) ([]*models.User, error) {
	hash, err := security.HashPassword(cfg.Seed.UserPassword, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("seed: hash user password: %w", err)
	}

	users := []*models.User{
		{
			CitizenID:    "079123456789",
			Name:         "Nguyen Van An",
			Email:        "an.nguyen@fremed.vn",
			PasswordHash: hash,
			Role:         enums.UserRoleAdmin,
			Department:   "Ban Giam doc",
			Position:     "Giam doc",
			IsActive:     true,
		},
		{
			CitizenID:    "079987654321",
			Name:         "Tran Thi Binh",
			Email:        "binh.tran@fremed.vn",
			PasswordHash: hash,
			Role:         enums.UserRoleManager,
			Department:   "Kinh doanh",
			Position:     "Truong phong",
			IsActive:     true,
		},
		{
			CitizenID:    "079555666777",
			Name:         "Le Minh Cuong",
			Email:        "cuong.le@fremed.vn",
			PasswordHash: hash,
			Role:         enums.UserRoleEmployee,
			Department:   "Kinh doanh",
			Position:     "Nhan vien ban hang",
			IsActive:     true,
		},
	}
	for _, user := range users {
		if err := tx.Create(user).Error; err != nil {
			return nil, fmt.Errorf("seed: create user %s: %w", user.CitizenID, err)
		}
	}
	return users, nil
}

func seedCategories(tx *gorm.DB) (map[string]*models.Category, error) {
	categories := map[string]*models.Category{
		"pain":        {Name: "Thuoc giam dau", Description: "Giam dau, ha sot", IsActive: true},
		"antibiotics": {Name: "Khang sinh", Description: "Khang sinh ke don", IsActive: true},
		"vitamins":    {Name: "Vitamin & khoang chat", Description: "Bo sung dinh duong", IsActive: true},
	}
	for key, category := range categories {
		if err := tx.Create(category).Error; err != nil {
			return nil, fmt.Errorf("seed: create category %s: %w", key, err)
		}
	}
	return categories, nil
}

func seedProducts(tx *gorm.DB, categories map[string]*models.Category) ([]*models.Product, error) {
	perUnit := func(v int) *int { return &v }

	products := []*models.Product{
		{
			Code: "PAR-500", Name: "Paracetamol 500mg",
			Description:      "Thuoc giam dau, ha sot",
			CategoryID:       categories["pain"].ID,
			Price:            15000, PricePerUnit: perUnit(750),
			ActiveIngredient: "Paracetamol",
			Specification:    "Hop 10 vi x 10 vien",
			Stock:            1200, IsActive: true,
		},
		{
			Code: "IBU-400", Name: "Ibuprofen 400mg",
			Description:      "Khang viem, giam dau",
			CategoryID:       categories["pain"].ID,
			Price:            22000, PricePerUnit: perUnit(1100),
			ActiveIngredient: "Ibuprofen",
			Specification:    "Hop 2 vi x 10 vien",
			Stock:            860, IsActive: true,
		},
		{
			Code: "AMX-500", Name: "Amoxicillin 500mg",
			Description:      "Khang sinh pho rong",
			CategoryID:       categories["antibiotics"].ID,
			Price:            25000, PricePerUnit: perUnit(2500),
			ActiveIngredient: "Amoxicillin trihydrate",
			Specification:    "Hop 10 vi x 10 vien",
			Stock:            640, IsActive: true,
		},
		{
			Code: "AZI-250", Name: "Azithromycin 250mg",
			Description:      "Khang sinh nhom macrolid",
			CategoryID:       categories["antibiotics"].ID,
			Price:            48000, PricePerUnit: perUnit(8000),
			ActiveIngredient: "Azithromycin dihydrate",
			Specification:    "Hop 1 vi x 6 vien",
			Stock:            420, IsActive: true,
		},
		{
			Code: "VTC-1000", Name: "Vitamin C 1000mg",
			Description:      "Tang cuong de khang",
			CategoryID:       categories["vitamins"].ID,
			Price:            35000, PricePerUnit: perUnit(3500),
			ActiveIngredient: "Acid ascorbic",
			Specification:    "Tuyp 10 vien sui",
			Stock:            980, IsActive: true,
		},
		{
			Code: "CAL-D3", Name: "Calcium D3",
			Description:      "Bo sung canxi va vitamin D3",
			CategoryID:       categories["vitamins"].ID,
			Price:            52000, PricePerUnit: perUnit(1733),
			ActiveIngredient: "Calcium carbonate, Cholecalciferol",
			Specification:    "Hop 3 vi x 10 vien",
			Stock:            510, IsActive: true,
		},
	}
	for _, product := range products {
		if err := tx.Create(product).Error; err != nil {
			return nil, fmt.Errorf("seed: create product %s: %w", product.Code, err)
		}
	}
	return products, nil
}

func seedPromotions(tx *gorm.DB, products []*models.Product, createdBy uuid.UUID) error {
	now := time.Now()

	promotions := []*models.Promotion{
		{
			Title:       "Khuyen mai he",
			Description: "Giam gia mua he cho nhom giam dau",
			StartDate:   now.AddDate(0, 0, -10),
			EndDate:     now.AddDate(0, 1, 0),
			Region:      enums.PromotionRegionNationwide,
			ProductIDs:  idsOf(products[0], products[1]),
			IsActive:    true,
			CreatedBy:   createdBy,
		},
		{
			Title:       "Uu dai khang sinh mien Bac",
			Description: "Chuong trinh cho nha thuoc mien Bac",
			StartDate:   now.AddDate(0, 0, -5),
			EndDate:     now.AddDate(0, 0, 20),
			Region:      enums.PromotionRegionNorth,
			ProductIDs:  idsOf(products[2], products[3]),
			IsActive:    true,
			CreatedBy:   createdBy,
		},
		{
			Title:       "Thang vitamin",
			Description: "Combo vitamin cho mua tuu truong",
			StartDate:   now.AddDate(0, 1, 0),
			EndDate:     now.AddDate(0, 2, 0),
			Region:      enums.PromotionRegionNationwide,
			ProductIDs:  idsOf(products[4], products[5]),
			IsActive:    true,
			CreatedBy:   createdBy,
		},
		{
			Title:       "Khuyen mai Tet (da ket thuc)",
			Description: "Chuong trinh Tet nam ngoai",
			StartDate:   now.AddDate(-1, 0, 0),
			EndDate:     now.AddDate(0, -8, 0),
			Region:      enums.PromotionRegionSouth,
			ProductIDs:  idsOf(products[0]),
			IsActive:    true,
			CreatedBy:   createdBy,
		},
		{
			Title:       "Chuong trinh tam dung",
			Description: "Dang cho phe duyet lai",
			StartDate:   now.AddDate(0, 0, -3),
			EndDate:     now.AddDate(0, 0, 30),
			Region:      enums.PromotionRegionCentral,
			ProductIDs:  idsOf(products[2]),
			IsActive:    false,
			CreatedBy:   createdBy,
		},
	}
	for _, promotion := range promotions {
		if err := tx.Create(promotion).Error; err != nil {
			return fmt.Errorf("seed: create promotion %q: %w", promotion.Title, err)
		}
	}
	return nil
}

func seedCertificates(tx *gorm.DB, products []*models.Product) error {
	certificate := &models.Certificate{
		Title:             "Chung nhan GPL",
		Description:       "Thuc hanh tot phan phoi thuoc",
		CertificateNumber: "GPL-2024-001",
		IssueDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ExpiryDate:        time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
		IssuingAuthority:  "Bo Y te",
		ProductIDs:        idsOf(products[0], products[2], products[4]),
	}
	if err := tx.Create(certificate).Error; err != nil {
		return fmt.Errorf("seed: create certificate %s: %w", certificate.CertificateNumber, err)
	}
	return nil
}

func seedOrder(tx *gorm.DB, products []*models.Product, creator *models.User) error {
	subtotal := 10*products[0].Price + 4*products[2].Price

	order := &models.Order{
		OrderNumber:     fmt.Sprintf("ORD-%d-001", time.Now().Year()),
		CustomerID:      "KH-0001",
		CustomerName:    "Nha thuoc Minh Chau",
		CustomerPhone:   "0903123456",
		CustomerAddress: "12 Hai Ba Trung, Quan 1, TP.HCM",
		TotalAmount:     subtotal,
		DiscountAmount:  0,
		DeliveryFee:     30000,
		FinalAmount:     subtotal + 30000,
		DeliveryOption:  enums.DeliveryOptionStandard,
		Status:          enums.OrderStatusProcessing,
		CreatedBy:       creator.ID,
		Items: []models.OrderItem{
			{
				ProductID:   products[0].ID,
				ProductName: products[0].Name,
				Quantity:    10,
				UnitPrice:   products[0].Price,
				TotalPrice:  10 * products[0].Price,
			},
			{
				ProductID:   products[2].ID,
				ProductName: products[2].Name,
				Quantity:    4,
				UnitPrice:   products[2].Price,
				TotalPrice:  4 * products[2].Price,
			},
		},
	}
	if err := tx.Create(order).Error; err != nil {
		return fmt.Errorf("seed: create order %s: %w", order.OrderNumber, err)
	}
	return nil
}

func idsOf(products ...*models.Product) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return ids
}
