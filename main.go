// Package main field rental API.
//
// @title           Field Rental API
// @version         1.0
// @description     Sports field rental backend (users, fields, time slots, bookings).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"fieldrental/app/echoServer"
	authctrl "fieldrental/app/echoServer/controller/auth"
	bookingctrl "fieldrental/app/echoServer/controller/booking"
	fieldctrl "fieldrental/app/echoServer/controller/field"
	timeslotctrl "fieldrental/app/echoServer/controller/timeslot"
	"fieldrental/app/echoServer/validation"
	"fieldrental/config"
	"fieldrental/migrations"
	authrepo "fieldrental/repository/auth"
	bookingrepo "fieldrental/repository/booking"
	fieldrepo "fieldrental/repository/field"
	timeslotrepo "fieldrental/repository/timeslot"
	"fieldrental/repository/webhook"
	authsvc "fieldrental/service/auth"
	bookingsvc "fieldrental/service/booking"
	fieldsvc "fieldrental/service/field"
	timeslotsvc "fieldrental/service/timeslot"
	"fieldrental/util/database"
	"fieldrental/util/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, migrations.FS); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	metrics.Register()

	// repos
	ar := authrepo.New(db)
	fr := fieldrepo.New(db)
	tr := timeslotrepo.New(db)
	br := bookingrepo.New(db)
	wh := webhook.New(cfg.WebhookURL)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	fs := fieldsvc.New(fr)
	ts := timeslotsvc.New(tr, fr)
	bs := bookingsvc.New(db, br, wh, log)

	// expired PENDING bookings get swept in the background
	cleaner := bookingsvc.NewCleaner(br)
	go func() {
		t := time.NewTicker(10 * time.Minute)
		defer t.Stop()
		for range t.C {
			n, err := cleaner.ReleaseExpired(ctx)
			if err != nil {
				log.Error("booking sweep failed", "err", err)
				continue
			}
			if n > 0 {
				log.Info("expired bookings cancelled", "count", n)
			}
		}
	}()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log, SecureCookie: cfg.Production()}
	fieldC := &fieldctrl.Controller{Svc: fs, V: v, Log: log}
	slotC := &timeslotctrl.Controller{Svc: ts, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Field:    fieldC,
		Timeslot: slotC,
		Booking:  bookingC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
