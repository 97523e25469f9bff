package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"eventadmissions/config"
	"eventadmissions/internal/adapters/auth"
	"eventadmissions/internal/adapters/email"
	deliveryhttp "eventadmissions/internal/delivery/http"
	"eventadmissions/internal/delivery/http/controllers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/repository/postgres"
	"eventadmissions/internal/services"
)

const contextTimeout = 5 * time.Second

// @title Event Admissions API
// @version 1.0
// @description Event eligibility, attendance, invitations, and membership API.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	requestRepo := postgres.NewInvitationRequestRepository(db)
	questionnaireRepo := postgres.NewQuestionnaireRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)

	// Adapters
	tokens := auth.NewJWTTokens(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureTLS,
		},
	})
	if err != nil {
		log.Fatalf("failed to create mailer: %v", err)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.JWTExpiry, emailService)
	membershipService := services.NewMembershipService(orgRepo, membershipRepo, contextTimeout)
	eventService := services.NewEventService(eventRepo, ticketRepo, membershipService, contextTimeout)
	eligibilityService := services.NewEligibilityService(
		eventRepo, orgRepo, membershipRepo, invitationRepo, requestRepo,
		questionnaireRepo, rsvpRepo, ticketRepo,
	)
	attendanceService := services.NewAttendanceService(
		eventRepo, rsvpRepo, ticketRepo, invitationRepo, userRepo,
		eligibilityService, membershipService, emailService, contextTimeout,
	)
	invitationService := services.NewInvitationService(
		eventRepo, invitationRepo, requestRepo, userRepo,
		membershipService, emailService, contextTimeout,
	)
	questionnaireService := services.NewQuestionnaireService(
		questionnaireRepo, eventRepo, invitationRepo, membershipService, contextTimeout,
	)

	// HTTP delivery
	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:          controllers.NewAuthController(logger, authService),
		Event:         controllers.NewEventController(logger, eventService, eligibilityService),
		Attendance:    controllers.NewAttendanceController(logger, attendanceService),
		Invitation:    controllers.NewInvitationController(logger, invitationService),
		Organization:  controllers.NewOrganizationController(logger, membershipService),
		Questionnaire: controllers.NewQuestionnaireController(logger, questionnaireService),
	}, tokens, logger)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
