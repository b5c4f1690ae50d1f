/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sciops/workorder-gin/internal/api"
	"github.com/sciops/workorder-gin/internal/config"
	"github.com/sciops/workorder-gin/internal/container"
	"github.com/sciops/workorder-gin/internal/repository"
	"github.com/sciops/workorder-gin/internal/service"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the work order API server. The server listens on the
configured host and port and serves the work order, personnel and
statistics endpoints plus the dashboard event stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load configuration
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		// 2. Logger
		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		api.SetLogger(logger)

		// 3. Container
		ctr, err := container.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 4. Services
		workOrderSvc := service.NewWorkOrderService(
			ctr.Orders(),
			repository.NewWorkOrderRepository(ctr.DB()),
			repository.NewStatusHistoryRepository(ctr.DB()),
			ctr.Hub(),
			logger,
			cfg.Numbering.Prefix,
		)
		personnelSvc := service.NewPersonnelService(repository.NewPersonnelRepository(ctr.DB()))
		statisticsSvc := service.NewStatisticsService(ctr.DB())

		// 5. Controllers
		workOrderController := api.NewWorkOrderController(workOrderSvc)
		personnelController := api.NewPersonnelController(personnelSvc)
		statisticsController := api.NewStatisticsController(statisticsSvc)

		// 6. Routes
		router := setupRoutesWithControllers(ctr, workOrderController, personnelController, statisticsController, cfg)

		// 7. Serve
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			log.Printf("Server starting on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}

		log.Println("Server exited")
		return nil
	},
}

// setupRoutesWithControllers binds the controllers to the API routes.
func setupRoutesWithControllers(
	ctr *container.Container,
	workOrderController *api.WorkOrderController,
	personnelController *api.PersonnelController,
	statisticsController *api.StatisticsController,
	cfg *config.Config,
) *gin.Engine {
	router := api.SetupRoutes(cfg, ctr.Hub(), ctr.DB())

	v1 := router.Group("/api/v1")
	{
		orders := v1.Group("/work-orders")
		{
			// Fixed paths must be registered before /:ticket
			orders.GET("/kinds", workOrderController.Kinds)
			orders.GET("/fields/:kind", workOrderController.Fields)

			orders.POST("", workOrderController.Create)
			orders.GET("", workOrderController.List)

			orders.GET("/:ticket", workOrderController.Get)
			orders.PUT("/:ticket", workOrderController.Update)
			orders.POST("/:ticket/status", workOrderController.SetStatus)
			orders.GET("/:ticket/history", workOrderController.History)
		}

		v1.GET("/personnel", personnelController.List)

		statistics := v1.Group("/statistics")
		{
			statistics.GET("/by-kind", statisticsController.ByKind)
			statistics.GET("/by-status", statisticsController.ByStatus)
			statistics.GET("/by-month", statisticsController.ByMonth)
			statistics.GET("/summary", statisticsController.Summary)
		}
	}

	// Unmatched routes answer JSON, not HTML
	router.NoRoute(func(c *gin.Context) {
		api.Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
	})

	return router
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}
