package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	imw "imagehub/internal/middleware"
	httprouters "imagehub/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// multipartOverhead покрывает заголовки частей и прочие поля формы сверх самого файла
const multipartOverhead = 1 << 20

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m        *http.ServeMux
	log      *slog.Logger
	e        *echo.Echo
	routers  *httprouters.Routers
	host     string
	port     string
	mediaDir string
}

// New собирает echo с общими middleware. mediaDir задается только для локального
// хранилища: файлы из него раздаются по /media. maxUploadSize > 0 ограничивает
// тело запроса до чтения multipart формы.
func New(log *slog.Logger, host, port string, timeout time.Duration, mediaDir string, maxUploadSize int64, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if timeout > 0 {
		e.Server.ReadTimeout = timeout
		e.Server.WriteTimeout = timeout
	}

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(imw.PrometheusMetrics)

	if maxUploadSize > 0 {
		e.Use(middleware.BodyLimit(bodyLimit(maxUploadSize)))
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
				slog.String("request_id", v.RequestID),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:        mux,
		log:      log,
		e:        e,
		routers:  routers,
		host:     host,
		port:     port,
		mediaDir: mediaDir,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// ServeHTTP позволяет гонять сервер через httptest без сети
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// bodyLimit переводит лимит файла в строку для middleware.BodyLimit, округляя вверх до KiB
func bodyLimit(maxUploadSize int64) string {
	limit := maxUploadSize + multipartOverhead

	return fmt.Sprintf("%dK", (limit+1023)/1024)
}

func (s *Server) addr() string {
	return net.JoinHostPort(s.host, s.port)
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	if s.mediaDir != "" {
		s.e.Static("/media", s.mediaDir)
	}

	api := s.e.Group("/api/v1")
	{
		folders := api.Group("/folders")
		{
			folders.GET("", s.routers.ListFolders)
			folders.POST("", s.routers.CreateFolder)
			folders.GET("/:folder", s.routers.GetFolder)
			folders.PATCH("/:folder", s.routers.RenameFolder)
			folders.PUT("/:folder", s.routers.RenameFolder)
			folders.DELETE("/:folder", s.routers.DeleteFolder)

			folders.GET("/:folder/images", s.routers.ListImages)
			folders.POST("/:folder/images", s.routers.UploadImage)
			folders.GET("/:folder/images/:image", s.routers.GetImage)
			folders.DELETE("/:folder/images/:image", s.routers.DeleteImage)
		}
	}
}
