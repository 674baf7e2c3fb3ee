package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"companion-llm/internal/config"
	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
	"companion-llm/internal/repository"
	"companion-llm/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	backend, err := llm.New(llm.Options{
		Provider:  cfg.LLMProvider,
		Model:     cfg.LLMModel,
		Binary:    cfg.OllamaBinary,
		OllamaURL: cfg.OllamaBaseURL,
		BaseURL:   cfg.LLMBaseURL,
		APIKey:    cfg.LLMAPIKey,
		Timeout:   cfg.LLMTimeout,
	}, logger)
	if err != nil {
		log.Fatal(err)
	}

	reportStore, err := repository.NewFileChatReportStore(cfg.ReportsDir)
	if err != nil {
		log.Fatal(err)
	}

	chatSvc := service.NewChatService(logger, backend, service.ChatOptions{
		HistoryTurns:      cfg.ChatHistoryTurns,
		SecondaryPersonas: cfg.ChatSecondaryPersonas,
	})
	reportSvc := service.NewChatReportService(logger, backend, reportStore, nil)

	sessionID := uuid.NewString()
	var history []domain.ChatTurn

	fmt.Printf("===== Companion (%s) =====\n", backend.Model())
	fmt.Println("Escribe tu mensaje. Comandos: /report, /exit")

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)

		switch line {
		case "":
			continue
		case "/exit":
			return
		case "/report":
			printReport(ctx, reportSvc, sessionID, history)
			continue
		}

		res, err := chatSvc.Reply(ctx, service.ChatRequest{
			Message:   line,
			SessionID: sessionID,
			History:   history,
		})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		if res.Reply.IsFallback() {
			fmt.Printf("[fallback: %s]\n", res.Reply.Reason)
		}
		fmt.Printf("[emociones: %s | temas: %s]\n", strings.Join(res.Emotions, ", "), strings.Join(res.Themes, ", "))
		fmt.Println(res.Reply.Value)

		now := time.Now().UTC().Format(time.RFC3339)
		history = append(history,
			domain.ChatTurn{Role: domain.RoleUser, Content: line, Timestamp: now, SessionID: sessionID},
			domain.ChatTurn{Role: domain.RoleAssistant, Content: res.Reply.Value, Timestamp: now, SessionID: sessionID},
		)
	}
}

func printReport(ctx context.Context, svc *service.ChatReportService, sessionID string, history []domain.ChatTurn) {
	res, err := svc.Generate(ctx, service.ChatReportRequest{SessionID: sessionID, History: history})
	if err != nil {
		fmt.Printf("reporte no disponible: %v\n", err)
		return
	}
	r := res.Value.Report
	fmt.Println("----- Reporte -----")
	fmt.Println(r.Summary)
	fmt.Printf("Emociones: %s\n", strings.Join(r.Emotions, ", "))
	fmt.Printf("Temas: %s\n", strings.Join(r.Themes, ", "))
	fmt.Printf("Mindfulness: %.0f  Intensidad: %.0f\n", r.MindfulnessScore, r.Intensity)
	fmt.Println(r.MotivationalClosing)
	fmt.Printf("(fuente: %s, guardado en %s)\n", res.Source, reportFileName(sessionID))
}

func reportFileName(sessionID string) string {
	return repository.SanitizeSessionID(sessionID) + ".json"
}
