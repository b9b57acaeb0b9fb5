package main

import (
	"context"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	classic "github.com/october-classic/classic-live/repos/classic"
	notify "github.com/october-classic/classic-live/repos/notify"

	auth "github.com/october-classic/classic-live/pkg/auth"

	admin "github.com/october-classic/classic-live/services/admin"
	board "github.com/october-classic/classic-live/services/board"
	news "github.com/october-classic/classic-live/services/news"
	scores "github.com/october-classic/classic-live/services/scores"
)

func main() {
	ctx := context.Background()

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	credentialsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	port := os.Getenv("PORT")
	allowOrigins := os.Getenv("CORS_HOSTS")

	credentialsOption := option.WithCredentialsJSON([]byte(credentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, projectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	firebaseApp, err := firebase.NewApp(ctx, nil, credentialsOption)
	if err != nil {
		log.Fatalf("error initializing app: %v\n", err)
	}

	classicService := classic.NewService(firestoreClient)
	notifyService := notify.NewService()

	boardService := board.NewBoardService(classicService)
	scoresService := scores.NewScoresService(classicService)
	newsService := news.NewNewsService(classicService)
	adminService := admin.NewAdminService(classicService, boardService, notifyService)

	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(allowOrigins, ",")
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Editor-Token", "Access-Control-Allow-Origin"}

	router := gin.Default()
	router.Use(cors.New(config))

	adminRouter := router.Group("/admin/v1")
	adminRouter.Use(auth.Middleware(firebaseApp))

	scoresRouter := router.Group("/scores/v1")
	scoresRouter.Use(auth.Middleware(firebaseApp))

	// The board is the viewers' surface and stays open.
	boardRouter := router.Group("/board/v1")

	// News reads stay open for viewers; the write routes sit behind the same
	// auth middleware as the other editor surfaces.
	newsRouter := router.Group("/news/v1")
	newsEditorRouter := router.Group("/news/v1")
	newsEditorRouter.Use(auth.Middleware(firebaseApp))

	admin.NewHTTPHandler(admin.HTTPOptions{
		Service: adminService,
		Router:  adminRouter,
	})

	scores.NewHTTPHandler(scores.HTTPOptions{
		Service: scoresService,
		Router:  scoresRouter,
	})

	board.NewHTTPHandler(board.HTTPOptions{
		Service: boardService,
		Router:  boardRouter,
	})

	news.NewHTTPHandler(news.HTTPOptions{
		Service:      newsService,
		Router:       newsRouter,
		EditorRouter: newsEditorRouter,
	})

	log.Fatal(router.Run(":" + port))
}
