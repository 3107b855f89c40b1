package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
	"github.com/trace333w/zscaler-api-talkers/pkg/ztclient"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// createClient builds a client from the resolved viper configuration.
func createClient() (zscaler.Client, error) {
	config := &zscaler.Config{
		Cloud:             viper.GetString("cloud"),
		ZIAUsername:       viper.GetString("zia_username"),
		ZIAPassword:       viper.GetString("zia_password"),
		ZIAAPIKey:         viper.GetString("zia_api_key"),
		ZPAClientID:       viper.GetString("zpa_client_id"),
		ZPAClientSecret:   viper.GetString("zpa_client_secret"),
		ZPACustomerID:     viper.GetInt64("zpa_customer_id"),
		ZPAPortalUsername: viper.GetString("zpa_portal_username"),
		ZPAPortalPassword: viper.GetString("zpa_portal_password"),
		ZCCClientID:       viper.GetString("zcc_client_id"),
		ZCCSecretKey:      viper.GetString("zcc_secret_key"),
		Debug:             viper.GetBool("debug"),
	}

	if config.Debug || viper.GetBool("verbose") {
		config.Logger = newLogger()
	}

	client, err := ztclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// zerologAdapter implements zscaler.Logger on a zerolog.Logger.
type zerologAdapter struct {
	logger zerolog.Logger
}

func newLogger() zscaler.Logger {
	level := zerolog.InfoLevel
	if viper.GetBool("debug") {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	return &zerologAdapter{
		logger: zerolog.New(writer).Level(level).With().Timestamp().Logger(),
	}
}

func (z *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	z.logger.Debug().Fields(fields).Msg(msg)
}

func (z *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	z.logger.Info().Fields(fields).Msg(msg)
}

func (z *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	z.logger.Warn().Fields(fields).Msg(msg)
}

func (z *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	z.logger.Error().Fields(fields).Msg(msg)
}

// renderRaw prints one raw API document in the selected output format. The
// table format falls back to indented JSON since the document shape is not
// known here.
func renderRaw(doc json.RawMessage) error {
	switch viper.GetString("output") {
	case OutputFormatYAML:
		var value any
		if err := json.Unmarshal(doc, &value); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}

		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(value)
	default:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		var value any
		if err := json.Unmarshal(doc, &value); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}

		return encoder.Encode(value)
	}
}

// renderRecords prints a result sequence. The table format shows the named
// columns, looked up per record; json and yaml emit the full records.
func renderRecords(records []zscaler.Record, columns []string) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(records)
	case OutputFormatYAML:
		decoded, err := zscaler.DecodeRecords[map[string]any](records)
		if err != nil {
			return fmt.Errorf("parsing records: %w", err)
		}

		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(decoded)
	default:
		if len(records) == 0 {
			fmt.Println("No results found")

			return nil
		}

		decoded, err := zscaler.DecodeRecords[map[string]any](records)
		if err != nil {
			return fmt.Errorf("parsing records: %w", err)
		}

		table := tablewriter.NewWriter(os.Stdout)

		header := make([]any, 0, len(columns))
		for _, column := range columns {
			header = append(header, column)
		}

		table.Header(header...)

		for _, record := range decoded {
			row := make([]any, 0, len(columns))
			for _, column := range columns {
				row = append(row, cellValue(record[column]))
			}

			_ = table.Append(row...)
		}

		_ = table.Render()

		return nil
	}
}

func cellValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}

		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "true"
		}

		return "false"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(encoded)
	}
}
