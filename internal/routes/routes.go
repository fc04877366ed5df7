package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/config"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/handlers"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/middleware"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/repository"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, log *logrus.Logger) {
	userProfileRepo := repository.NewUserProfileRepository(db)
	athleteProfileRepo := repository.NewAthleteProfileRepository(db, log)

	oracle := services.NewScoreOracle(cfg.ScoreOracleURL, cfg.OracleTimeout, log)
	profileService := services.NewProfileService(athleteProfileRepo, userProfileRepo, oracle, cfg.StoreTimeout, log)
	rankingService := services.NewRankingService(athleteProfileRepo, cfg.StoreTimeout, log)

	leaderboardHandler := handlers.NewLeaderboardHandler(rankingService)
	athleteHandler := handlers.NewAthleteProfileHandler(profileService)
	userHandler := handlers.NewUserProfileHandler(profileService)

	app.Get("/leaderboard", leaderboardHandler.GetLeaderboard)

	app.Post("/athlete-profile", athleteHandler.CreateAthleteProfile)
	app.Get("/athlete-profile/:id", athleteHandler.GetAthleteProfile)
	app.Post("/athlete-profile/:id/score", athleteHandler.RecordScore)
	app.Put("/athlete-profile/:id/privacy", middleware.AuthRequired(cfg.JWTSecret), athleteHandler.SetPrivacy)

	app.Put("/user-profile/:user_id", userHandler.UpsertUserProfile)
	app.Get("/user-profile/:user_id", userHandler.GetUserProfile)
}
