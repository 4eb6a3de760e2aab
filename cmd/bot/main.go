// cmd/bot/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"credit-ledger/internal/config"
	"credit-ledger/internal/domain"
	"credit-ledger/internal/service"
	"credit-ledger/internal/storage/postgres"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const helpText = "*Credit ledger*\n\n" +
	"Commands:\n" +
	"`/credits <user_id>` — credits of one user\n" +
	"`/year <yyyy>` — monthly performance for a year"

func main() {
	cfg := config.MustLoad()
	if cfg.BotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN not set")
	}

	db, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}
	defer db.Close()

	store := postgres.NewStorage(db)
	dict, err := store.ResolveIDs(context.Background())
	if err != nil {
		log.Fatal("Failed to resolve dictionary ids:", err)
	}
	svc := service.New(store, dict)

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Panic(err)
	}
	log.Printf("Bot started: @%s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		chatID := update.Message.Chat.ID
		text := strings.TrimSpace(update.Message.Text)

		var msgText string
		var err error

		switch {
		case text == "/start" || text == "/help":
			msgText = helpText

		case strings.HasPrefix(text, "/credits "):
			msgText, err = handleCredits(svc, strings.TrimSpace(text[9:]))

		case strings.HasPrefix(text, "/year "):
			msgText, err = handleYear(svc, strings.TrimSpace(text[6:]))

		default:
			msgText = "Unknown command. Try /help"
		}

		if err != nil {
			msgText = "Error: " + err.Error()
		}

		msg := tgbotapi.NewMessage(chatID, msgText)
		msg.ParseMode = "Markdown"
		_, _ = bot.Send(msg)
	}
}

func handleCredits(svc *service.Service, arg string) (string, error) {
	userID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return "Usage: /credits <user_id>", nil
	}

	reports, err := svc.CreditReports(context.Background(), userID)
	if err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("*Credits of user %d*", userID))
	for _, r := range reports {
		if r.IsClosed {
			lines = append(lines, fmt.Sprintf("\nissued %s, closed %s\nbody %d, percent %s, paid %s",
				r.IssuanceDate, r.ActualReturnDate, r.Body, r.Percent, r.TotalPayments))
		} else {
			lines = append(lines, fmt.Sprintf("\nissued %s, due %s, overdue %d days\nbody %d, percent %s, paid body %s / percent %s",
				r.IssuanceDate, r.ReturnDate, *r.OverdueDays, r.Body, r.Percent, r.BodyPayments, r.PercentPayments))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func handleYear(svc *service.Service, arg string) (string, error) {
	year, err := strconv.Atoi(arg)
	if err != nil {
		return "Usage: /year <yyyy>", nil
	}

	records, err := svc.YearPerformance(context.Background(), year)
	if err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("*Performance %d*", year))
	for _, record := range records {
		switch r := record.(type) {
		case domain.MonthPerformance:
			lines = append(lines, fmt.Sprintf("%02d: issued %d for %d (%s of plan), collected %s (%s of plan)",
				r.Month, r.Issuances, r.SumIssuancesForMonth, r.IssuancePlanPercent,
				r.SumPaymentsForMonth, r.PaymentPlanPerformancePercent))
		case domain.YearTotals:
			lines = append(lines, fmt.Sprintf("\n*Total*: issued %d for %d (%s), collected %s (%s)",
				r.TotalIssuances, r.TotalSumIssuancesForMonth, r.TotalIssuancePlanPercent,
				r.TotalSumPaymentsForMonth, r.TotalPaymentPlanPerformancePercent))
		}
	}
	return strings.Join(lines, "\n"), nil
}
