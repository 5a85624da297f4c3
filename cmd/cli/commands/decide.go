package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/core/policy"
	"github.com/hamshifts/shift-scheduler/pkg/core/services"
)

// DecideCmd creates the decide command
func DecideCmd(app *AppContext) *cobra.Command {
	var (
		uid          string
		existingFile string
		incomingFile string
	)

	cmd := &cobra.Command{
		Use:   "decide <operation> <path>",
		Short: "Evaluate the access policy for one request",
		Long: `Evaluate whether a request would be allowed.

<operation> is read, create, update or delete. <path> is a document path such
as events/field-day/shifts/9adbca2f. Documents are read from JSON files; an
omitted file or the literal "null" means the document does not exist.

Admin membership is read from the events in the configured store.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := policy.ParseOperation(args[0])
			if err != nil {
				return err
			}

			existing, err := readDocument(existingFile)
			if err != nil {
				return fmt.Errorf("failed to read existing document: %w", err)
			}
			incoming, err := readDocument(incomingFile)
			if err != nil {
				return fmt.Errorf("failed to read incoming document: %w", err)
			}

			var principal *model.Principal
			if uid != "" {
				principal = &model.Principal{UID: uid}
			}

			database, err := app.Store()
			if err != nil {
				return err
			}

			result, err := services.CheckAccess(app.Ctx, database, app.Logger, policy.Request{
				Path:      args[1],
				Operation: op,
				Principal: principal,
				Existing:  existing,
				Incoming:  incoming,
			})
			if err != nil {
				return err
			}

			app.Logger.Debug("decide command",
				zap.String("path", args[1]),
				zap.String("operation", args[0]),
				zap.Bool("allowed", result.Allowed()),
				zap.String("rule", result.Rule))

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", result.Decision, result.Rule)
			if !result.Allowed() {
				return fmt.Errorf("request denied by %s", result.Rule)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "Authenticated user id (omit for anonymous)")
	cmd.Flags().StringVar(&existingFile, "existing", "", "JSON file with the stored document")
	cmd.Flags().StringVar(&incomingFile, "incoming", "", "JSON file with the proposed document")

	return cmd
}

// readDocument loads a JSON object from path. An empty path or a JSON null
// yields a nil document.
func readDocument(path string) (model.Document, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseDocument(data)
}

func parseDocument(data []byte) (model.Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document must be a JSON object: %w", err)
	}
	return doc, nil
}
