package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	authsvc "github.com/stockroomhq/stockroom-backend/internal/auth"
	"github.com/stockroomhq/stockroom-backend/internal/auditlog"
	category "github.com/stockroomhq/stockroom-backend/internal/categories"
	product "github.com/stockroomhq/stockroom-backend/internal/products"
	user "github.com/stockroomhq/stockroom-backend/internal/users"
	"github.com/stockroomhq/stockroom-backend/pkg/auth/session"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/kv"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/redis"
)

type seedUser struct {
	username string
	password string
	role     string
}

type seedCategory struct {
	name        string
	description string
}

type seedProduct struct {
	name     string
	price    string
	quantity int
	category string
}

var demoUsers = []seedUser{
	{username: "admin", password: "admin123", role: "admin"},
	{username: "staff1", password: "staff123", role: "staff"},
}

var demoCategories = []seedCategory{
	{name: "Electronics", description: "Devices and gadgets"},
	{name: "Apparel", description: "Clothing and accessories"},
	{name: "Home Goods", description: "Household appliances"},
	{name: "Books", description: "Books and magazines"},
}

var demoProducts = []seedProduct{
	{name: "iPhone 15 Pro", price: "29990000", quantity: 15, category: "Electronics"},
	{name: "MacBook Air M2", price: "32990000", quantity: 8, category: "Electronics"},
	{name: "Men's T-Shirt", price: "199000", quantity: 50, category: "Apparel"},
	{name: "Women's Jeans", price: "399000", quantity: 3, category: "Apparel"},
	{name: "Rice Cooker", price: "1290000", quantity: 0, category: "Home Goods"},
	{name: "Inverter Fridge", price: "8990000", quantity: 12, category: "Home Goods"},
	{name: "JavaScript Programming", price: "159000", quantity: 25, category: "Books"},
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	store := kv.NewRedisStore(redisClient)

	userStore, err := user.NewStore(store)
	if err != nil {
		logg.Error(ctx, "failed to create user store", err)
		os.Exit(1)
	}
	categoryStore, err := category.NewStore(store)
	if err != nil {
		logg.Error(ctx, "failed to create category store", err)
		os.Exit(1)
	}
	productStore, err := product.NewStore(store)
	if err != nil {
		logg.Error(ctx, "failed to create product store", err)
		os.Exit(1)
	}
	auditStore, err := auditlog.NewStore(store)
	if err != nil {
		logg.Error(ctx, "failed to create audit log store", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserStore:      userStore,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	categoryService, err := category.NewService(categoryStore, productStore, nil)
	if err != nil {
		logg.Error(ctx, "failed to create category service", err)
		os.Exit(1)
	}

	productService, err := product.NewService(productStore, categoryStore, auditStore, nil)
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		os.Exit(1)
	}

	var actorID uuid.UUID
	for _, demo := range demoUsers {
		created, err := authService.Register(ctx, authsvc.RegisterInput{
			Username: demo.username,
			Password: demo.password,
			Role:     demo.role,
		})
		if err != nil {
			logg.Error(ctx, "failed to seed user "+demo.username, err)
			os.Exit(1)
		}
		logg.Info(logg.WithFields(ctx, map[string]any{
			"username": created.Username,
			"role":     created.Role,
		}), "seeded user")
		if created.Role.String() == "admin" {
			actorID = created.UserID
		}
	}

	categoryIDs := make(map[string]uuid.UUID, len(demoCategories))
	for _, demo := range demoCategories {
		created, err := categoryService.CreateCategory(ctx, demo.name, demo.description)
		if err != nil {
			logg.Error(ctx, "failed to seed category "+demo.name, err)
			os.Exit(1)
		}
		categoryIDs[demo.name] = created.CategoryID
		logg.Info(logg.WithFields(ctx, map[string]any{"category": created.Name}), "seeded category")
	}

	for _, demo := range demoProducts {
		categoryID := categoryIDs[demo.category]
		created, err := productService.CreateProduct(ctx, actorID, product.CreateProductInput{
			Name:       demo.name,
			Price:      decimal.RequireFromString(demo.price),
			Quantity:   demo.quantity,
			CategoryID: &categoryID,
		})
		if err != nil {
			logg.Error(ctx, "failed to seed product "+demo.name, err)
			os.Exit(1)
		}
		logg.Info(logg.WithFields(ctx, map[string]any{
			"product":  created.Name,
			"quantity": created.Quantity,
			"status":   created.InventoryStatus.String(),
		}), "seeded product")
	}

	logg.Info(ctx, "seed complete; login with admin/admin123 or staff1/staff123")
}
