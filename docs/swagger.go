package docs

// @title           Gym Check-In API
// @version         1.0
// @description     Gym check-in service: member registration and login, gym search by title or proximity, geofenced daily check-ins with admin validation, and a live per-gym check-in feed.

// @contact.name   API Support

// @host      localhost:3333
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
