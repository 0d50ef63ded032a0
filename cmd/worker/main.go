package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/gcppubsub"
	_ "gocloud.dev/pubsub/kafkapubsub"

	"github.com/binwatch/pe-features/internal/derive"
	"github.com/binwatch/pe-features/internal/log"
	"github.com/binwatch/pe-features/internal/resultstore"
	"github.com/binwatch/pe-features/internal/utils"
	"github.com/binwatch/pe-features/pkg/api/features"
)

// handleMessage enhances a single base feature bundle. The message body
// is the bundle JSON; metadata carries the sample name and sha256 set by
// the extractor. Malformed bundles and contract violations are producer
// bugs that redelivery cannot fix, so those messages are acked and
// dropped rather than retried.
func handleMessage(ctx context.Context, msg *pubsub.Message, store *resultstore.ResultStore) error {
	name := msg.Metadata["name"]
	sha := msg.Metadata["sha256"]
	if sha == "" {
		sha = utils.GetSHA256Hash(msg.Body)
	}
	ctx = log.ContextWithAttrs(ctx, log.LabelAttr("sample", name), slog.String("sha256", sha))

	var bundle features.Bundle
	if err := json.Unmarshal(msg.Body, &bundle); err != nil {
		slog.WarnContext(ctx, "Ignoring malformed bundle message", "error", err)
		msg.Ack()
		return nil
	}

	enhanced, err := derive.Enhance(ctx, bundle)
	if err != nil {
		slog.WarnContext(ctx, "Ignoring bundle violating input contract", "error", err)
		msg.Ack()
		return nil
	}

	if store != nil {
		if err := store.Save(ctx, resultstore.Sample{Name: name, SHA256: sha}, enhanced); err != nil {
			return err
		}
	}

	msg.Ack()
	return nil
}

func messageLoop(ctx context.Context, subURL string, store *resultstore.ResultStore) error {
	sub, err := pubsub.OpenSubscription(ctx, subURL)
	if err != nil {
		return err
	}
	defer sub.Shutdown(ctx)

	slog.InfoContext(ctx, "Listening for messages to process...")
	for {
		msg, err := sub.Receive(ctx)
		if err != nil {
			// All subsequent receive calls will return the same error, so we bail out.
			return fmt.Errorf("error receiving message: %w", err)
		}

		if err := handleMessage(ctx, msg, store); err != nil {
			slog.ErrorContext(ctx, "Failed to process message", "error", err)
		}
	}
}

func main() {
	ctx := context.Background()
	subURL := os.Getenv("PE_FEATURES_WORKER_SUBSCRIPTION")
	resultsBucket := os.Getenv("PE_FEATURES_RESULTS")

	log.Initialize(os.Getenv("LOGGER_ENV"))

	var store *resultstore.ResultStore
	if resultsBucket != "" {
		store = resultstore.New(resultsBucket, resultstore.ConstructPath())
	}

	// Log the configuration of the worker at startup so we can observe it.
	slog.InfoContext(ctx, "Starting worker",
		"subscription", subURL,
		"results_bucket", resultsBucket)

	if err := messageLoop(ctx, subURL, store); err != nil {
		slog.ErrorContext(ctx, "Error encountered", "error", err)
	}
}
