package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/clinsim/interview-controller/internal/index"
	"github.com/clinsim/interview-controller/internal/llm"
	"github.com/clinsim/interview-controller/internal/retrieval"
	"github.com/clinsim/interview-controller/internal/session"
	"github.com/clinsim/interview-controller/internal/state"
)

// #region main
func main() {
	_ = godotenv.Load()

	dbPath := envOr("INTERVIEW_DB", "interviews.db")
	language := envOr("INTERVIEW_LANGUAGE", "es")
	interactive := envOr("INTERVIEW_INTERACTIVE", "false") == "true"
	maxTurns, _ := strconv.Atoi(envOr("INTERVIEW_MAX_TURNS", "40"))
	seed, _ := strconv.ParseInt(envOr("INTERVIEW_SEED", strconv.FormatInt(time.Now().UnixNano(), 10)), 10, 64)

	store, err := state.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Model-backed when an API key is configured, mock banks otherwise.
	var client *llm.Client
	if os.Getenv("OPENAI_API_KEY") != "" {
		client = llm.NewClient(llm.DefaultConfig())
	}

	retriever, err := buildRetriever(ctx, language, client)
	if err != nil {
		log.Fatalf("failed to build retriever: %v", err)
	}

	var machine *session.Machine
	if client != nil {
		machine = session.NewMachine(retriever, client)
	} else {
		machine = session.NewMachine(retriever, nil)
	}
	manager := session.NewManager(machine, store)

	profile := session.Profile{
		Name:        envOr("CLIENT_NAME", "Alex"),
		Age:         34,
		Complaints:  []string{"low mood", "poor sleep"},
		Language:    language,
		Interactive: interactive,
		MaxTurns:    maxTurns,
		Seed:        seed,
	}
	if v := envOr("CLIENT_AGE", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			profile.Age = n
		}
	}

	id, err := manager.StartSession(profile)
	if err != nil {
		log.Fatalf("failed to start session: %v", err)
	}

	mode := "mock"
	if client != nil {
		mode = "model"
	}
	fmt.Println("Clinical Interview Controller ready.")
	fmt.Printf("  DB: %s | session: %s | language: %s | mode: %s | interactive: %v\n",
		dbPath, id, language, mode, interactive)

	scanner := bufio.NewScanner(os.Stdin)
	human := ""

	for {
		res, err := manager.Advance(ctx, id, human)
		if err != nil {
			log.Fatalf("advance error: %v", err)
		}
		human = ""

		if res.Suspended {
			fmt.Printf("\nTherapist: %s\n> ", res.PendingQuestion)
			if !scanner.Scan() {
				fmt.Println("\nInput closed; session left suspended for later resume.")
				return
			}
			human = strings.TrimSpace(scanner.Text())
			if human == "quit" || human == "exit" {
				fmt.Printf("Session %s left suspended; resume it later with the same id.\n", id)
				return
			}
			if human == "" {
				human = " "
			}
			continue
		}

		// Terminal
		if res.CrisisMessage != "" {
			fmt.Printf("\n%s\n", res.CrisisMessage)
		}
		out, err := json.MarshalIndent(res.Artifact, "", "  ")
		if err != nil {
			log.Fatalf("marshal artifact: %v", err)
		}
		fmt.Printf("\nSession finished in state %s:\n%s\n", res.State, out)
		return
	}
}

// #endregion main

// #region retriever

// buildRetriever indexes the seed corpus with both adapters. Embeddings
// come from the model when available, the hash embedder otherwise.
func buildRetriever(ctx context.Context, language string, client *llm.Client) (*retrieval.Retriever, error) {
	segments := index.SeedCorpus(language)

	var embedder index.Embedder
	if client != nil {
		embedder = client
	} else {
		embedder = index.NewHashEmbedder(0)
	}

	embeddings, err := index.EmbedCorpus(ctx, embedder, segments)
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}

	lexical := index.NewLexicalIndex(segments, index.DefaultLexicalConfig())
	semantic, err := index.NewSemanticIndex(segments, embeddings)
	if err != nil {
		return nil, fmt.Errorf("semantic index: %w", err)
	}

	return retrieval.NewRetriever(segments, lexical, semantic, embedder, retrieval.DefaultConfig()), nil
}

// #endregion retriever

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
