package container

import (
	"fmt"
	"time"

	"github.com/sciops/workorder-gin/internal/config"
	"github.com/sciops/workorder-gin/internal/database"
	"github.com/sciops/workorder-gin/internal/repository"
	"github.com/sciops/workorder-gin/internal/service"
	"github.com/sciops/workorder-gin/internal/store"
	"github.com/sciops/workorder-gin/internal/ws"
	"gorm.io/gorm"
)

// Container wires the application dependencies: database, session store,
// event hub.
type Container struct {
	db     *gorm.DB
	orders *store.Store
	hub    *ws.Hub
}

// NewContainer initializes all dependencies from the configuration: it
// connects and migrates the database, loads the session store (checking
// numbering integrity), and starts the event hub.
func NewContainer(cfg *config.Config) (*Container, error) {
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	orders := store.New()
	if err := service.LoadStore(orders, repository.NewWorkOrderRepository(db)); err != nil {
		return nil, fmt.Errorf("failed to load work order store: %w", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	return &Container{
		db:     db,
		orders: orders,
		hub:    hub,
	}, nil
}

// DB returns the database handle.
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Orders returns the session work order store.
func (c *Container) Orders() *store.Store {
	return c.orders
}

// Hub returns the websocket event hub.
func (c *Container) Hub() *ws.Hub {
	return c.hub
}

// Close releases container resources.
func (c *Container) Close() error {
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return nil
}
