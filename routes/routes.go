package routes

import (
	"net/http"

	"tourbase/auth"
	"tourbase/builder"
	"tourbase/forms"
	"tourbase/inventory"
	"tourbase/livesession"
	"tourbase/media"
	"tourbase/middleware"
	"tourbase/ratelim"
	"tourbase/search"
	"tourbase/summary"
	"tourbase/tours"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddTourRoutes(router *httprouter.Router) {
	router.POST("/api/tours", middleware.Authenticate(tours.CreateTour))
	router.GET("/api/tours", middleware.Authenticate(tours.GetTours))
	router.GET("/api/tours/:tourid", middleware.Authenticate(tours.GetTour))
	router.PUT("/api/tours/:tourid", middleware.Authenticate(tours.RenameTour))
	router.DELETE("/api/tours/:tourid", middleware.Authenticate(tours.DeleteTour))

	router.POST("/api/tours/:tourid/fases/:fase/sections", middleware.Authenticate(tours.AddSectionHandler))
	router.PUT("/api/tours/:tourid/fases/:fase/sections/:sectionid", middleware.Authenticate(tours.RenameSectionHandler))
	router.DELETE("/api/tours/:tourid/fases/:fase/sections/:sectionid", middleware.Authenticate(tours.DeleteSectionHandler))

	router.POST("/api/tours/:tourid/fases/:fase/sections/:sectionid/components", middleware.Authenticate(tours.AddComponentHandler))
	router.PUT("/api/tours/:tourid/fases/:fase/sections/:sectionid/components/:componentid", middleware.Authenticate(tours.UpdateComponentHandler))
	router.DELETE("/api/tours/:tourid/fases/:fase/sections/:sectionid/components/:componentid", middleware.Authenticate(tours.DeleteComponentHandler))
	router.PUT("/api/tours/:tourid/fases/:fase/sections/:sectionid/order", middleware.Authenticate(tours.ReorderComponentsHandler))
}

func AddFormRoutes(router *httprouter.Router) {
	router.POST("/api/forms", middleware.Authenticate(forms.CreateForm))
	router.GET("/api/forms", middleware.Authenticate(forms.GetForms))
	router.GET("/api/forms/:formid", middleware.Authenticate(forms.GetForm))
	router.PUT("/api/forms/:formid", middleware.Authenticate(forms.UpdateForm))
	router.DELETE("/api/forms/:formid", middleware.Authenticate(forms.DeleteForm))
}

func AddInventoryRoutes(router *httprouter.Router) {
	router.POST("/api/inventory", middleware.Authenticate(inventory.CreateTemplate))
	router.GET("/api/inventory", middleware.Authenticate(inventory.GetTemplates))
	router.GET("/api/inventory/:templateid", middleware.Authenticate(inventory.GetTemplate))
	router.PUT("/api/inventory/:templateid", middleware.Authenticate(inventory.UpdateTemplate))
	router.DELETE("/api/inventory/:templateid", middleware.Authenticate(inventory.DeleteTemplate))
}

func AddLiveSessionRoutes(router *httprouter.Router) {
	router.POST("/api/livesessions", middleware.Authenticate(livesession.StartSession))
	router.GET("/api/livesessions", middleware.Authenticate(livesession.GetActiveSessions))
	router.GET("/api/admin/livesessions", middleware.Authenticate(middleware.RequireRole("admin", livesession.GetAllSessions)))
	router.GET("/api/livesessions/:sessionid", middleware.Authenticate(livesession.GetSession))
	router.PATCH("/api/livesessions/:sessionid/end", middleware.Authenticate(livesession.EndSession))

	// Visitor-facing surface, no account required.
	router.GET("/api/livesessions/:sessionid/public", ratelim.RateLimit(livesession.GetPublicSession))
	router.POST("/api/livesessions/:sessionid/responses/:sectionid", ratelim.RateLimit(livesession.SubmitSectionResponses))
	router.GET("/api/livesessions/:sessionid/qr", ratelim.RateLimit(livesession.SessionQR))
	router.GET("/ws/livesessions/:sessionid", livesession.ServeVisitor)

	router.GET("/api/livesessions/:sessionid/summary", middleware.Authenticate(summary.GetSummary))
	router.GET("/api/livesessions/:sessionid/summary/print", middleware.Authenticate(summary.PrintSummary))
}

func AddMediaRoutes(router *httprouter.Router) {
	router.POST("/api/media/upload", ratelim.RateLimit(middleware.Authenticate(media.Upload)))
	router.GET("/api/media/:mediaid", middleware.OptionalAuth(media.GetMedia))
}

func AddSearchRoutes(router *httprouter.Router) {
	router.GET("/api/search/tours", ratelim.RateLimit(middleware.Authenticate(search.SearchTours)))
}

func AddBuilderRoutes(router *httprouter.Router) {
	router.GET("/ws/builder/:tourid", builder.ServeEditor)
}

func RoutesWrapper(router *httprouter.Router) {
	AddStaticRoutes(router)
	AddAuthRoutes(router)
	AddTourRoutes(router)
	AddFormRoutes(router)
	AddInventoryRoutes(router)
	AddLiveSessionRoutes(router)
	AddMediaRoutes(router)
	AddSearchRoutes(router)
	AddBuilderRoutes(router)
}
