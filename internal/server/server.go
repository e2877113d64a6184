package server

import (
	"net/http"

	"gift-registry-service/internal/handler"
	authmw "gift-registry-service/internal/middleware"
	"gift-registry-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	jwtSecret      string
	paymentHandler *handler.PaymentHandler
	giftHandler    *handler.GiftHandler
	rsvpHandler    *handler.RSVPHandler
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	paymentService service.PaymentService,
	giftService service.GiftService,
	rsvpService service.RSVPService,
	jwtSecret string,
) *Server {
	e := echo.New()
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		jwtSecret:      jwtSecret,
		paymentHandler: handler.NewPaymentHandler(paymentService),
		giftHandler:    handler.NewGiftHandler(giftService),
		rsvpHandler:    handler.NewRSVPHandler(rsvpService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- gift registry --------
	api.GET("/gifts", s.giftHandler.ListGifts)
	api.POST("/gifts", s.giftHandler.CreateGift, authmw.OwnerAuth(s.jwtSecret))

	// -------- rsvp --------
	api.POST("/rsvps", s.rsvpHandler.SubmitRSVP)
	api.GET("/rsvps", s.rsvpHandler.ListRSVPs, authmw.OwnerAuth(s.jwtSecret))

	// -------- payments --------
	payments := api.Group("/payments")
	payments.POST("/create", s.paymentHandler.CreatePayment)
	payments.GET("/status/:preferenceID", s.paymentHandler.GetStatus)

	// -------- provider webhooks --------
	payments.POST("/webhook", s.paymentHandler.Webhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
