package main

import (
	auth "Machinist/internal/auth"
	batch "Machinist/internal/calc/batch"
	importer "Machinist/internal/calc/importer"
	milling "Machinist/internal/calc/milling"
	report "Machinist/internal/calc/report"
	library "Machinist/internal/library"
	repo "Machinist/internal/repo"
	"context"
	"database/sql"

	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresUserDB(db)
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
	// Load TOKEN_KEY from environment
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo}
	libraryH := &library.Handler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	millingH := &milling.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/milling/calc", millingH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/milling/batch", batchH.Milling).Methods("POST")
	secureApi.HandleFunc("/tools/milling/import", importerH.Milling).Methods("POST")
	secureApi.HandleFunc("/tools/milling/report", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/milling/materials", millingH.Materials).Methods("GET")

	secureApi.HandleFunc("/library/tools", libraryH.ListTools).Methods("GET")
	secureApi.HandleFunc("/library/tools", libraryH.CreateTool).Methods("POST")
	secureApi.HandleFunc("/library/tools/{id:[0-9]+}", libraryH.DeleteTool).Methods("DELETE")
	secureApi.HandleFunc("/library/setups", libraryH.ListSetups).Methods("GET")
	secureApi.HandleFunc("/library/setups", libraryH.SaveSetup).Methods("POST")
	secureApi.HandleFunc("/library/setups/{id:[0-9]+}", libraryH.GetSetup).Methods("GET")
	secureApi.HandleFunc("/library/setups/{id:[0-9]+}", libraryH.DeleteSetup).Methods("DELETE")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)

}
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Println("Starting server on :443")
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
