package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharecrm/share/internal/app/auth"
	"github.com/sharecrm/share/internal/app/controllers"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/middleware"
)

// Controllers groups every HTTP handler set the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Public       *controllers.PublicController
	Catalogue    *controllers.CatalogueController
	Customer     *controllers.CustomerController
	Class        *controllers.ClassController
	PAQ          *controllers.PAQController
	Enrollment   *controllers.EnrollmentController
	Payment      *controllers.PaymentController
	Cancellation *controllers.CancellationController
	Instructor   *controllers.InstructorController
	Report       *controllers.ReportController
	User         *controllers.UserController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	public := v1.Group("/public")
	{
		public.GET("/terms", c.Public.ListTerms)
		public.GET("/classes", c.Public.ListClasses)
		public.GET("/venues", c.Public.ListVenues)
		public.GET("/paq/questions", c.Public.PAQQuestions)
		public.POST("/enquiries", c.Public.SubmitEnquiry)
	}

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", c.Auth.Register)
		authRoutes.POST("/login", c.Auth.Login)
		authRoutes.POST("/refresh", c.Auth.RefreshToken)
		authRoutes.POST("/logout", c.Auth.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", c.Auth.Me)
	authenticated.GET("/files/:id", c.PAQ.FileURL)

	// Customer self-service
	me := authenticated.Group("/me")
	me.Use(authMiddleware.RoleRequired(models.RoleCustomer))
	{
		me.GET("/profile", c.Customer.Profile)
		me.PUT("/profile", c.Customer.UpdateProfile)
		me.GET("/credit", c.Customer.MyCredit)

		me.GET("/paq", c.PAQ.Latest)
		me.POST("/paq", c.PAQ.Submit)
		me.POST("/paq/:id/certificate", c.PAQ.UploadCertificate)

		me.POST("/enrollments/quote", c.Enrollment.Quote)
		me.POST("/enrollments", c.Enrollment.Enroll)
		me.GET("/enrollments", c.Enrollment.ListMine)
		me.GET("/enrollments/:id", c.Enrollment.GetMine)

		me.POST("/payments/:id/confirm", c.Payment.Confirm)

		me.POST("/bookings/:id/cancellation", c.Cancellation.Request)
		me.GET("/cancellations", c.Cancellation.ListMine)
	}

	// Instructor portal
	instructor := authenticated.Group("/instructor")
	instructor.Use(authMiddleware.RoleRequired(models.RoleInstructor))
	{
		instructor.GET("/classes", c.Instructor.Classes)
		instructor.GET("/sessions", c.Instructor.Sessions)
		instructor.GET("/sessions/:id/roster", c.Instructor.Roster)
		instructor.PUT("/sessions/:id/attendance", c.Instructor.SaveAttendance)
		instructor.GET("/sessions/:id/live", c.Instructor.Live)
	}

	// Staff back office; each route checks one permission code
	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleStaff))
	perm := authMiddleware.RequirePermission

	customers := admin.Group("/customers")
	{
		customers.GET("", perm(auth.PermCustomersRead), c.Customer.List)
		customers.GET("/:id", perm(auth.PermCustomersRead), c.Customer.Get)
		customers.POST("", perm(auth.PermCustomersWrite), c.Customer.Create)
		customers.PUT("/:id", perm(auth.PermCustomersWrite), c.Customer.Update)
		customers.DELETE("/:id", perm(auth.PermCustomersWrite), c.Customer.Delete)
		customers.POST("/:id/block", perm(auth.PermCustomersWrite), c.Customer.Block)
		customers.POST("/:id/unblock", perm(auth.PermCustomersWrite), c.Customer.Unblock)
		customers.GET("/:id/credit", perm(auth.PermCustomersRead), c.Customer.Credit)
		customers.POST("/:id/credit", perm(auth.PermCustomersCredit), c.Customer.AdjustCredit)
	}

	venues := admin.Group("/venues", perm(auth.PermVenuesManage))
	{
		venues.GET("", c.Catalogue.ListVenues)
		venues.GET("/:id", c.Catalogue.GetVenue)
		venues.POST("", c.Catalogue.CreateVenue)
		venues.PUT("/:id", c.Catalogue.UpdateVenue)
		venues.DELETE("/:id", c.Catalogue.DeleteVenue)
	}

	instructors := admin.Group("/instructors", perm(auth.PermInstructorsManage))
	{
		instructors.GET("", c.Catalogue.ListInstructors)
		instructors.GET("/:id", c.Catalogue.GetInstructor)
		instructors.POST("", c.Catalogue.CreateInstructor)
		instructors.PUT("/:id", c.Catalogue.UpdateInstructor)
		instructors.DELETE("/:id", c.Catalogue.DeleteInstructor)
	}

	terms := admin.Group("/terms", perm(auth.PermTermsManage))
	{
		terms.GET("", c.Catalogue.ListTerms)
		terms.GET("/:id", c.Catalogue.GetTerm)
		terms.POST("", c.Catalogue.CreateTerm)
		terms.PUT("/:id", c.Catalogue.UpdateTerm)
		terms.DELETE("/:id", c.Catalogue.DeleteTerm)
	}

	classes := admin.Group("/classes")
	{
		classes.GET("", perm(auth.PermClassesManage), c.Class.List)
		classes.GET("/:id", perm(auth.PermClassesManage), c.Class.Get)
		classes.POST("", perm(auth.PermClassesManage), c.Class.Create)
		classes.PUT("/:id", perm(auth.PermClassesManage), c.Class.Update)
		classes.DELETE("/:id", perm(auth.PermClassesManage), c.Class.Delete)
		classes.POST("/:id/sessions/generate", perm(auth.PermSessionsManage), c.Class.GenerateSessions)
	}

	sessions := admin.Group("/sessions")
	{
		sessions.GET("", perm(auth.PermSessionsManage), c.Class.ListSessions)
		sessions.GET("/:id", perm(auth.PermSessionsManage), c.Class.GetSession)
		sessions.PUT("/:id", perm(auth.PermSessionsManage), c.Class.UpdateSession)
		sessions.GET("/:id/attendance", perm(auth.PermAttendanceRead), c.Class.SessionAttendance)
		sessions.GET("/:id/live", perm(auth.PermAttendanceRead), c.Class.Live)
	}

	paq := admin.Group("/paq")
	{
		paq.GET("", perm(auth.PermPAQRead), c.PAQ.List)
		paq.GET("/:id", perm(auth.PermPAQRead), c.PAQ.Get)
		paq.POST("/:id/review", perm(auth.PermPAQReview), c.PAQ.Review)
	}

	enrollments := admin.Group("/enrollments")
	{
		enrollments.GET("", perm(auth.PermEnrollmentsRead), c.Enrollment.List)
		enrollments.GET("/:id", perm(auth.PermEnrollmentsRead), c.Enrollment.Get)
		enrollments.POST("", perm(auth.PermEnrollmentsWrite), c.Enrollment.EnrollOnBehalf)
		enrollments.POST("/:id/cancel", perm(auth.PermEnrollmentsWrite), c.Enrollment.Cancel)
	}

	payments := admin.Group("/payments")
	{
		payments.GET("", perm(auth.PermPaymentsRead), c.Payment.List)
		payments.POST("/:id/mark-paid", perm(auth.PermPaymentsWrite), c.Payment.MarkPaid)
	}

	cancellations := admin.Group("/cancellations", perm(auth.PermCancellationsReview))
	{
		cancellations.GET("", c.Cancellation.List)
		cancellations.POST("/:id/approve", c.Cancellation.Approve)
		cancellations.POST("/:id/reject", c.Cancellation.Reject)
	}

	reports := admin.Group("/reports", perm(auth.PermReportsExport))
	{
		reports.GET("/enrollments", c.Report.Enrollments)
		reports.GET("/attendance", c.Report.Attendance)
		reports.GET("/payments", c.Report.Payments)
		reports.GET("/customers", c.Report.Customers)
	}

	roles := admin.Group("", perm(auth.PermRolesManage))
	{
		roles.GET("/permissions", c.User.Permissions)
		roles.GET("/roles", c.User.ListRoles)
		roles.GET("/roles/:id", c.User.GetRole)
		roles.POST("/roles", c.User.CreateRole)
		roles.PUT("/roles/:id", c.User.UpdateRole)
		roles.DELETE("/roles/:id", c.User.DeleteRole)
	}

	users := admin.Group("/users", perm(auth.PermUsersManage))
	{
		users.GET("", c.User.ListUsers)
		users.POST("", c.User.CreateUser)
		users.PUT("/:id/role", c.User.AssignRole)
	}

	enquiries := admin.Group("/enquiries", perm(auth.PermEnquiriesManage))
	{
		enquiries.GET("", c.User.ListEnquiries)
		enquiries.POST("/:id/resolve", c.User.ResolveEnquiry)
	}
}
