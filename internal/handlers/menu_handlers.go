// Файл: internal/handlers/menu_handlers.go
//
// Обработчики кнопок меню: каталог проектов, реферальное подменю,
// регистрация по /start.
package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"refbot/internal/constants"
	"refbot/internal/db"
	"refbot/internal/models"
	"refbot/internal/utils"
)

// handleStart регистрирует участника и показывает главное меню.
// inviteCode — аргумент /start из реферальной ссылки, может быть пустым.
func (h *BotHandler) handleStart(message *tgbotapi.Message, inviteCode string) {
	chatID := message.Chat.ID

	var username string
	if message.From != nil {
		username = message.From.UserName
	}

	member, created, err := h.Deps.Directory.Register(chatID, profileName(message.From), username, inviteCode)
	if err != nil {
		// Регистрация не удалась, но меню все равно показываем: бот
		// остается пригодным, повторный /start идемпотентно доделает.
		log.Printf("handleStart: ошибка регистрации участника chatID %d: %v", chatID, err)
	} else if created {
		log.Printf("handleStart: зарегистрирован участник id %d (chatID %d).", member.ID, chatID)
	}

	greeting := constants.WelcomeMessage + "\n" + constants.ChooseActionMessage
	if err := h.Deps.BotClient.SendTextWithKeyboard(chatID, greeting, MainMenuKeyboard()); err != nil {
		log.Printf("handleStart: ошибка отправки приветствия для chatID %d: %v", chatID, err)
	}
}

// handleBackToMain возвращает пользователя в главное меню.
func (h *BotHandler) handleBackToMain(chatID int64) {
	if err := h.Deps.BotClient.SendTextWithKeyboard(chatID, constants.ChooseActionMessage, MainMenuKeyboard()); err != nil {
		log.Printf("handleBackToMain: ошибка отправки меню для chatID %d: %v", chatID, err)
	}
}

// --- Каталог проектов / Projects catalog ---

// projectTitles возвращает названия проектов для роутера и клавиатуры.
// При ошибке чтения каталог считается пустым: меню продолжает работать.
func (h *BotHandler) projectTitles() []string {
	titles, err := db.GetProjectTitles()
	if err != nil {
		log.Printf("projectTitles: ошибка чтения каталога проектов: %v", err)
		return nil
	}
	return titles
}

// handleProjectsList показывает каталог проектов клавиатурой названий.
func (h *BotHandler) handleProjectsList(chatID int64, titles []string) {
	if len(titles) == 0 {
		if err := h.Deps.BotClient.SendTextWithKeyboard(chatID, "Каталог проектов пока пуст.", MainMenuKeyboard()); err != nil {
			log.Printf("handleProjectsList: ошибка отправки для chatID %d: %v", chatID, err)
		}
		return
	}
	if err := h.Deps.BotClient.SendTextWithKeyboard(chatID, constants.ProjectsListMessage, ProjectsKeyboard(titles)); err != nil {
		log.Printf("handleProjectsList: ошибка отправки каталога для chatID %d: %v", chatID, err)
	}
}

// handleProjectDetail показывает карточку проекта: описание со ссылкой,
// с фото при наличии.
func (h *BotHandler) handleProjectDetail(chatID int64, title string) {
	project, err := db.GetProjectByTitle(title)
	if err != nil {
		if err == sql.ErrNoRows {
			// Проект удалили между построением клавиатуры и нажатием.
			log.Printf("handleProjectDetail: проект '%s' не найден, chatID %d возвращен в каталог.", title, chatID)
			h.handleProjectsList(chatID, h.projectTitles())
			return
		}
		log.Printf("handleProjectDetail: ошибка чтения проекта '%s': %v", title, err)
		return
	}

	text := project.Title + "\n\n" + project.Description
	if project.Link.Valid && project.Link.String != "" {
		text += "\n\n" + project.Link.String
	}

	keyboard := ProjectsKeyboard(h.projectTitles())
	if project.ImageURL.Valid && project.ImageURL.String != "" {
		if errPhoto := h.Deps.BotClient.SendPhotoURL(chatID, project.ImageURL.String, text, keyboard); errPhoto == nil {
			return
		}
		// Фото не ушло (битый URL и т.п.) — падаем на текстовую карточку.
		log.Printf("handleProjectDetail: фото проекта '%s' не отправлено, отправляется текст.", title)
	}
	if errSend := h.Deps.BotClient.SendTextWithKeyboard(chatID, text, keyboard); errSend != nil {
		log.Printf("handleProjectDetail: ошибка отправки карточки '%s' для chatID %d: %v", title, chatID, errSend)
	}
}

// --- Реферальное подменю / Referral submenu ---

// handleFriendsMenu показывает подменю "Приглашенные друзья".
func (h *BotHandler) handleFriendsMenu(chatID int64) {
	if err := h.Deps.BotClient.SendTextWithKeyboard(chatID, constants.FriendsMenuMessage, FriendsMenuKeyboard()); err != nil {
		log.Printf("handleFriendsMenu: ошибка отправки подменю для chatID %d: %v", chatID, err)
	}
}

// handleReferralLink отправляет персональную ссылку приглашения и QR-код.
func (h *BotHandler) handleReferralLink(chatID int64) {
	member, found, err := h.Deps.Directory.GetMember(chatID)
	if err != nil || !found {
		log.Printf("handleReferralLink: участник chatID %d не найден (err=%v). Нужен /start.", chatID, err)
		h.suggestStart(chatID)
		return
	}

	link, err := utils.GenerateReferralLink(h.Deps.Config.BotUsername, member.InviteCode)
	if err != nil {
		log.Printf("handleReferralLink: не удалось построить ссылку для chatID %d: %v", chatID, err)
		return
	}

	text := "Ваша ссылка для приглашения:\n" + link
	if errSend := h.Deps.BotClient.SendTextWithKeyboard(chatID, text, FriendsMenuKeyboard()); errSend != nil {
		log.Printf("handleReferralLink: ошибка отправки ссылки для chatID %d: %v", chatID, errSend)
		return
	}

	qr, err := utils.GenerateReferralQRCode(h.Deps.Config.BotUsername, member.InviteCode)
	if err != nil {
		// Ссылка уже ушла, QR — приятное дополнение.
		return
	}
	if errQR := h.Deps.BotClient.SendPhotoBytes(chatID, "invite_qr.png", qr, "QR-код вашей ссылки"); errQR != nil {
		log.Printf("handleReferralLink: ошибка отправки QR-кода для chatID %d: %v", chatID, errQR)
	}
}

// handleReferralList показывает приглашенных, сгруппированных по уровням 1..3.
func (h *BotHandler) handleReferralList(chatID int64) {
	levels, err := h.Deps.Directory.ListDescendantsByLevel(chatID)
	if err != nil {
		log.Printf("handleReferralList: ошибка получения списка приглашенных для chatID %d: %v", chatID, err)
		h.suggestStart(chatID)
		return
	}

	text := formatReferralLevels(levels)
	if errSend := h.Deps.BotClient.SendTextWithKeyboard(chatID, text, FriendsMenuKeyboard()); errSend != nil {
		log.Printf("handleReferralList: ошибка отправки списка для chatID %d: %v", chatID, errSend)
	}
}

// formatReferralLevels собирает текст списка приглашенных. Уровни выводятся
// по возрастанию, пустые уровни опускаются.
func formatReferralLevels(levels map[int][]models.Member) string {
	var b strings.Builder
	for level := 1; level <= constants.REFERRAL_MAX_DEPTH; level++ {
		members := levels[level]
		if len(members) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(constants.LevelDisplayMap[level])
		for _, m := range members {
			b.WriteString("\n— " + m.DisplayName())
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return constants.EmptyReferralsText
	}
	return strings.TrimRight(b.String(), "\n")
}

// handleBalance показывает баланс участника.
func (h *BotHandler) handleBalance(chatID int64) {
	balance, err := h.Deps.Directory.GetBalance(chatID)
	if err != nil {
		log.Printf("handleBalance: ошибка получения баланса для chatID %d: %v", chatID, err)
		h.suggestStart(chatID)
		return
	}
	text := fmt.Sprintf("Ваш баланс: %.0f", balance)
	if errSend := h.Deps.BotClient.SendTextWithKeyboard(chatID, text, FriendsMenuKeyboard()); errSend != nil {
		log.Printf("handleBalance: ошибка отправки баланса для chatID %d: %v", chatID, errSend)
	}
}

// handleDescription показывает описание реферальной программы.
func (h *BotHandler) handleDescription(chatID int64) {
	text := fmt.Sprintf(constants.DescriptionTemplate, h.Deps.Config.ReferralBonus)
	if err := h.Deps.BotClient.SendTextWithKeyboard(chatID, text, FriendsMenuKeyboard()); err != nil {
		log.Printf("handleDescription: ошибка отправки описания для chatID %d: %v", chatID, err)
	}
}

// suggestStart просит пользователя выполнить /start: участник не найден
// (например, база чистилась).
func (h *BotHandler) suggestStart(chatID int64) {
	if err := h.Deps.BotClient.SendTextWithKeyboard(chatID, "Пожалуйста, начните с команды /start.", MainMenuKeyboard()); err != nil {
		log.Printf("suggestStart: ошибка отправки подсказки для chatID %d: %v", chatID, err)
	}
}
