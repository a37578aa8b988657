package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/product-catalog-client/internal/delivery/telegram"
	"github.com/yourusername/product-catalog-client/internal/delivery/web"
	"github.com/yourusername/product-catalog-client/internal/domain/repository"
	"github.com/yourusername/product-catalog-client/internal/infrastructure/excel"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the card list and the dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), true, false)
	},
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the dashboard as a Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), false, true)
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the web server and the Telegram bot together",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), true, true)
	},
}

// serve tanlangan frontendlarni bitta signal konteksti ostida ishga tushirish
func serve(parent context.Context, withWeb, withBot bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if withBot {
		if err := cfg.RequireTelegram(); err != nil {
			return err
		}
	}

	reg := newRegistry()
	repo := newRepository(cfg, reg, logger)
	parser := excel.NewParser(logger.Named("excel"))
	writer := excel.NewWriter()

	g, gctx := errgroup.WithContext(ctx)

	if withWeb {
		srv, err := web.NewServer(web.Config{
			Addr:            cfg.HTTPAddr,
			Repo:            repo,
			Parser:          parser,
			Writer:          writer,
			Logger:          logger,
			ItemsPerPage:    cfg.ItemsPerPage,
			NotificationTTL: cfg.NotificationTTL,
			Registerer:      reg,
			Gatherer:        reg,
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return srv.Run(gctx) })
	}

	if withBot {
		bot, err := newBot(repo, parser, writer)
		if err != nil {
			return err
		}
		g.Go(func() error { return bot.Start(gctx) })
	}

	err := g.Wait()
	logger.Info("shutdown complete", zap.Error(err))
	return err
}

func newBot(repo repository.ProductRepository, parser repository.ExcelParser, writer repository.ExcelWriter) (*telegram.BotHandler, error) {
	return telegram.NewBotHandler(cfg.TelegramToken, telegram.Config{
		Repo:            repo,
		Parser:          parser,
		Writer:          writer,
		Logger:          logger,
		ItemsPerPage:    cfg.ItemsPerPage,
		NotificationTTL: cfg.NotificationTTL,
	})
}
