package main

import (
	"log"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"refbot/internal/api"
	"refbot/internal/config"
	"refbot/internal/constants"
	"refbot/internal/db"
	"refbot/internal/handlers"
	"refbot/internal/notify"
	"refbot/internal/orderflow"
	"refbot/internal/referral"
	"refbot/internal/session"
	"refbot/internal/telegram_api"
	"refbot/internal/utils"
)

func main() {
	// --- Блок инициализации ---
	err := godotenv.Load()
	if err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}

	if err := utils.InitInviteCodeKey(cfg.InviteCodeKey); err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать ключ реферальных кодов: %v", err)
	}

	if err := db.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать базу данных: %v", err)
	}
	defer db.CloseDB()

	err = telegram_api.InitBot(cfg.TelegramToken, cfg.AppEnv == "dev")
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать Telegram бота: %v", err)
	}

	if telegram_api.Client == nil || telegram_api.Client.GetAPI() == nil {
		log.Fatalf("Критическая ошибка: Telegram API клиент не был корректно инициализирован.")
	}
	botAPI := telegram_api.Client.GetAPI()

	// --- Сборка доменных компонентов ---
	sessionManager := session.NewSessionManager()

	directory := referral.NewDirectory(db.MemberStore{}, cfg.ReferralBonus, constants.REFERRAL_MAX_DEPTH)

	mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	dispatcher := notify.NewDispatcher(db.SettingsStore{}, telegram_api.Client, mailer)

	orderEngine := orderflow.NewEngine(sessionManager, db.OrderStore{}, dispatcher)

	handlerDeps := handlers.HandlerDependencies{
		Config:         cfg,
		BotClient:      telegram_api.Client,
		SessionManager: sessionManager,
		OrderEngine:    orderEngine,
		Directory:      directory,
	}
	botHandler := handlers.NewBotHandler(handlerDeps)

	// --- Настройка роутера и Middleware ---
	apiRouter := chi.NewRouter()
	apiRouter.Use(middleware.Logger)
	apiRouter.Use(middleware.Recoverer)

	api.SetupRoutes(apiRouter, api.ApiDependencies{Config: cfg})

	// Запускаем HTTP-сервер в отдельной горутине
	go func() {
		log.Printf("Запуск HTTP-сервера административного API на порту %s", cfg.HTTPPort)
		if err := http.ListenAndServe(":"+cfg.HTTPPort, apiRouter); err != nil {
			log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: не удалось запустить HTTP-сервер: %v", err)
		}
	}()

	// Запуск самого бота
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Println("Бот и API-сервер запущены и готовы к работе...")

	for update := range updates {
		if update.Message != nil {
			log.Printf("[%s] %s", senderName(update.Message), update.Message.Text)
			// Горутина на обновление: чаты обрабатываются параллельно,
			// внутри чата события сериализует замок сессии.
			go botHandler.HandleUpdate(update)
		}
	}
}

// senderName возвращает имя отправителя для лога. У постов из каналов
// и сервисных сообщений поле From отсутствует.
func senderName(message *tgbotapi.Message) string {
	if message == nil || message.From == nil {
		return "?"
	}
	return message.From.UserName
}
