package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/reporthub/reporthub-api/api"
	"github.com/reporthub/reporthub-api/config"
	"github.com/reporthub/reporthub-api/databases"
	"github.com/reporthub/reporthub-api/identity"
	"github.com/reporthub/reporthub-api/lifecycle"
	"github.com/reporthub/reporthub-api/notify"
	"github.com/reporthub/reporthub-api/payments"
)

// App stores the router and its collaborators, so it can be reused
type App struct {
	Router  *mux.Router
	Config  config.Config
	Client  databases.ClientHelper
	Metrics *api.Metrics

	Auth     *api.Authenticator
	Limiter  *api.ReportRateLimiter
	Notifier notify.Notifier
	Payments payments.Checkouter
	Uploads  UploadSigner

	dbHelper databases.DatabaseHelper
}

// NewApp returns an App over an already connected database
func NewApp(conf config.Config, db databases.DatabaseHelper) *App {
	return &App{Config: conf, dbHelper: db, Metrics: api.NewMetrics(), Notifier: notify.Nop{}}
}

// Database returns the database the routes run against
func (a *App) Database() databases.DatabaseHelper {
	return a.dbHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Metrics == nil {
		a.Metrics = api.NewMetrics()
	}
	reports := databases.NewReportDatabase(a.dbHelper)
	citizens := databases.NewCitizenDatabase(a.dbHelper)
	staffDB := databases.NewStaffDatabase(a.dbHelper)

	re := Report{Engine: lifecycle.New(reports, citizens, staffDB), Notifier: a.Notifier}
	c := Citizen{DB: citizens}
	s := Staff{DB: staffDB}
	cm := Comment{DB: databases.NewCommentDatabase(a.dbHelper)}
	co := Checkout{Payments: a.Payments}
	cloudinaryHandler := CloudinaryHandler{Signer: a.Uploads}

	protect := a.Auth.Protect
	var create http.Handler = http.HandlerFunc(re.CreateReportHandler)
	if a.Limiter != nil {
		create = a.Limiter.Middleware(create)
	}

	r := mux.NewRouter()
	r.Use(api.RequestLogger(a.Metrics))

	// healthchex
	r.HandleFunc("/health", api.HealthCheckHandler).Methods("GET")
	r.HandleFunc("/metrics", a.Metrics.Handler).Methods("GET")

	// fixed paths first so they are not captured by /reports/{id}
	r.HandleFunc("/reports", re.ReportsHandler).Methods("GET")
	r.Handle("/reports", a.Auth.Middleware(create)).Methods("POST")
	r.HandleFunc("/reports/pending", re.PendingReportsHandler).Methods("GET")
	r.HandleFunc("/reports/latest", re.LatestReportsHandler).Methods("GET")
	r.HandleFunc("/reports-paginated", re.PaginatedReportsHandler).Methods("GET")
	r.HandleFunc("/reports/{id}", re.ReportByIDHandler).Methods("GET")
	r.Handle("/reports/{id}/upvote", protect(re.UpvoteReportHandler)).Methods("PATCH")
	r.Handle("/reports/{id}", protect(re.UpdateReportHandler)).Methods("PATCH")
	r.Handle("/reports/{id}", protect(re.DeleteReportHandler)).Methods("DELETE")
	r.HandleFunc("/reports/{id}/assign", re.AssignReportHandler).Methods("PUT")
	r.HandleFunc("/reports/{id}/reject", re.RejectReportHandler).Methods("PUT")
	r.HandleFunc("/reports/{id}/status", re.UpdateReportStatusHandler).Methods("PATCH")

	r.Handle("/dashboard/my-issues", protect(re.MyIssuesHandler)).Methods("GET")
	r.Handle("/dashboard/assigned-issues", protect(re.AssignedIssuesHandler)).Methods("GET")

	r.HandleFunc("/citizen", c.CitizensHandler).Methods("GET")
	r.HandleFunc("/citizen", c.CreateCitizenHandler).Methods("POST")
	r.HandleFunc("/citizen/{email}", c.CitizenByEmailHandler).Methods("GET")
	r.HandleFunc("/citizen/{id}/role", c.UpdateCitizenRoleHandler).Methods("PATCH")
	r.HandleFunc("/citizen/{id}/action", c.UpdateCitizenActionHandler).Methods("PATCH")
	r.HandleFunc("/citizen/{email}/subscribe", c.SubscribeCitizenHandler).Methods("PATCH")

	r.HandleFunc("/staff", s.StaffHandler).Methods("GET")
	r.HandleFunc("/staff", s.CreateStaffHandler).Methods("POST")
	r.HandleFunc("/staff/{id}", s.UpdateStaffHandler).Methods("PATCH")
	r.Handle("/staff/{id}", protect(s.DeleteStaffHandler)).Methods("DELETE")

	r.HandleFunc("/comments", cm.CommentsHandler).Methods("GET")
	r.Handle("/comments", protect(cm.CreateCommentHandler)).Methods("POST")

	r.HandleFunc("/create-checkout-session", co.CreateCheckoutSessionHandler).Methods("POST")
	r.Handle("/upload-signature", protect(cloudinaryHandler.GenerateSignature)).Methods("POST")

	return r
}

// Initialize is invoked by the serve command to connect with the database and create a router
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	if err := client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	a.Client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	zap.S().Info("reporthub-api has connected to the database")

	if err := a.setupIntegrations(); err != nil {
		return err
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

// setupIntegrations wires the external services enabled by the config
func (a *App) setupIntegrations() error {
	if a.Config.FirebaseProjectID == "" {
		return fmt.Errorf("firebase project id is not set")
	}
	verifier := identity.NewFirebaseVerifier(a.Config.FirebaseProjectID, a.Config.FirebaseCertsURL, http.DefaultClient)
	a.Auth = api.NewAuthenticator(verifier, a.Config.TokenCacheTTL)

	if a.Metrics == nil {
		a.Metrics = api.NewMetrics()
	}

	a.Notifier = notify.Nop{}
	if a.Config.SendGridAPIKey != "" {
		a.Notifier = notify.NewSendGrid(a.Config.SendGridAPIKey, a.Config.MailFrom, a.Config.ClientDomain)
	} else {
		zap.S().Warn("SENDGRID_API_KEY is not set, assignment emails are disabled")
	}

	if a.Config.StripeSecretKey != "" {
		a.Payments = payments.NewStripeCheckout(a.Config.StripeSecretKey, a.Config.ClientDomain)
	} else {
		zap.S().Warn("STRIPE_SECRET_KEY is not set, checkout is disabled")
	}

	if a.Config.CloudinaryURL != "" {
		signer, err := NewCloudinarySigner(a.Config.CloudinaryURL, a.Config.CloudinaryUploadPreset)
		if err != nil {
			return err
		}
		a.Uploads = signer
	}

	if a.Config.RedisAddress != "" && a.Config.DailyReportLimit > 0 {
		counter := api.NewRedisCounter(a.Config.RedisAddress, a.Config.RedisPassword)
		a.Limiter = api.NewReportRateLimiter(counter, a.Config.DailyReportLimit)
	}
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}
