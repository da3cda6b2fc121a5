package routes

const (
	// Health
	Health = "/health"

	// Auth
	AuthRegister       = "/api/v1/auth/register"
	AuthLogin          = "/api/v1/auth/login"
	AuthRefresh        = "/api/v1/auth/refresh"
	AuthLogout         = "/api/v1/auth/logout"
	AuthForgotPassword = "/api/v1/auth/forgot-password"
	AuthResetPassword  = "/api/v1/auth/reset-password"
	AuthChangePassword = "/api/v1/auth/change-password"

	// Users
	UserProfile   = "/api/v1/users/profile"
	UserFavorites = "/api/v1/users/favorites"
	UserActivity  = "/api/v1/users/activity"

	// Properties
	Properties       = "/api/v1/properties"
	PropertiesMine   = "/api/v1/properties/mine"
	PropertyByID     = "/api/v1/properties/{id}"
	PropertyFavorite = "/api/v1/properties/{id}/favorite"

	// Analyses
	Analyses            = "/api/v1/analysis"
	AnalysesPublic      = "/api/v1/analysis/public"
	AnalysisByID        = "/api/v1/analysis/{id}"
	AnalysisFavorite    = "/api/v1/analysis/{id}/favorite"
	AnalysisShare       = "/api/v1/analysis/{id}/share"
	AnalysisMotivation  = "/api/v1/analysis/{id}/motivation"
	AnalysisRevenue     = "/api/v1/analysis/{id}/revenue"
	AnalysisMaintenance = "/api/v1/analysis/{id}/maintenance"
	AnalysisSummary     = "/api/v1/analysis/{id}/summary"

	// Uploads; the key pattern allows slashes in object keys
	UploadImage    = "/api/v1/upload/image"
	UploadImages   = "/api/v1/upload/images"
	UploadDocument = "/api/v1/upload/document"
	UploadByKey    = "/api/v1/upload/{key:.+}"
)
