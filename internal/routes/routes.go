package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/docsmart-health/docsmart-api/internal/audit"
	"github.com/docsmart-health/docsmart-api/internal/cache"
	"github.com/docsmart-health/docsmart-api/internal/config"
	"github.com/docsmart-health/docsmart-api/internal/handlers"
	infraRepo "github.com/docsmart-health/docsmart-api/internal/infra/repository"
	"github.com/docsmart-health/docsmart-api/internal/mailer"
	"github.com/docsmart-health/docsmart-api/internal/middleware"
	"github.com/docsmart-health/docsmart-api/internal/payments"
	"github.com/docsmart-health/docsmart-api/internal/storage"
	ucAppointment "github.com/docsmart-health/docsmart-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	doctorCache := cache.NewDoctorCache(cfg)
	uploader := storage.NewUploader(cfg)
	mail := mailer.New(cfg)

	razorpayGateway := payments.NewRazorpayGateway(cfg)
	stripeGateway := payments.NewStripeGateway(cfg)

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	bookAppointmentUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	editAppointmentUC := ucAppointment.NewEditAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	checkSlotUC := ucAppointment.NewCheckSlot(appointmentRepo)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	dashboardUC := ucAppointment.NewDashboard(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	userHandler := handlers.NewUserHandler(
		db,
		uploader,
		mail,
		bookAppointmentUC,
		editAppointmentUC,
		cancelAppointmentUC,
		deleteAppointmentUC,
		checkSlotUC,
		listAppointmentsUC,
	)

	adminHandler := handlers.NewAdminHandler(
		db,
		uploader,
		doctorCache,
		auditDispatcher,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsUC,
		dashboardUC,
	)

	doctorHandler := handlers.NewDoctorHandler(db, doctorCache)
	paymentHandler := handlers.NewPaymentHandler(db, razorpayGateway, stripeGateway, auditDispatcher)
	feedbackHandler := handlers.NewFeedbackHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/doctor/list", doctorHandler.List)

		feedback := api.Group("/feedback")
		{
			feedback.POST("/create", feedbackHandler.Create)
			feedback.GET("/get", feedbackHandler.List)
			feedback.GET("/getbyid/:id", feedbackHandler.GetByID)
			feedback.PUT("/update/:id", feedbackHandler.Update)
			feedback.DELETE("/delete/:id", feedbackHandler.Delete)
		}

		// ------------------------------
		// USER
		// ------------------------------
		user := api.Group("/user")
		{
			user.POST("/register", authHandler.Register)
			user.POST("/login", authHandler.Login)

			secured := user.Group("/")
			secured.Use(middleware.RequireAuth(cfg, middleware.RoleUser))
			{
				secured.GET("/get-profile", userHandler.GetProfile)
				secured.POST("/update-profile", userHandler.UpdateProfile)

				secured.POST("/book-appointment", userHandler.BookAppointment)
				secured.GET("/appointments", userHandler.ListAppointments)
				secured.GET("/my-appointment/:appointmentId", userHandler.GetAppointment)
				secured.PUT("/edit-appointment/:appointmentId", userHandler.EditAppointment)
				secured.POST("/cancel-appointment", userHandler.CancelAppointment)
				secured.DELETE("/delete-appointment/:appointmentId", userHandler.DeleteAppointment)
				secured.POST("/check-appointment-slot", userHandler.CheckAppointmentSlot)

				secured.POST("/payment-razorpay", paymentHandler.PaymentRazorpay)
				secured.POST("/verifyRazorpay", paymentHandler.VerifyRazorpay)
				secured.POST("/payment-stripe", paymentHandler.PaymentStripe)
				secured.POST("/verifyStripe", paymentHandler.VerifyStripe)
			}
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		{
			admin.POST("/login", authHandler.LoginAdmin)

			secured := admin.Group("/")
			secured.Use(middleware.RequireAuth(cfg, middleware.RoleAdmin))
			{
				secured.POST("/add-doctor", adminHandler.AddDoctor)
				secured.GET("/all-doctors", adminHandler.AllDoctors)
				secured.DELETE("/doctor/:id", adminHandler.DeleteDoctor)
				secured.POST("/change-availability", adminHandler.ChangeAvailability)

				secured.GET("/appointments", adminHandler.Appointments)
				secured.POST("/cancel-appointment", adminHandler.CancelAppointment)
				secured.POST("/complete-appointment", adminHandler.CompleteAppointment)

				secured.GET("/dashboard", adminHandler.Dashboard)
				secured.GET("/appointments/report", adminHandler.AppointmentsReport)
				secured.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
