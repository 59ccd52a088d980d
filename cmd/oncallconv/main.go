package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"oncallconv/internal/config"
	"oncallconv/internal/converter"
	"oncallconv/internal/model"
	"oncallconv/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "oncallconv",
	Short: "Convert department on-call schedules into import files",
	Long: `oncallconv reads the hospital scheduling spreadsheets for
Radiology and Cardiology and produces the caret-delimited file the
scheduling system imports.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload/convert web service",
	RunE:  runServe,
}

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert schedule workbooks from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConvert,
}

var (
	serveDev  bool
	servePort int

	convertDept   string
	convertOutput string
	convertXLSX   bool
)

func init() {
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "development mode")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config.toml)")

	convertCmd.Flags().StringVarP(&convertDept, "department", "d", "", "department: radiology or cardiology (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file path (default: import file name in the working directory)")
	convertCmd.Flags().BoolVar(&convertXLSX, "xlsx", false, "also write the XLSX review copy next to the output")
	convertCmd.MarkFlagRequired("department")

	rootCmd.AddCommand(serveCmd, convertCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serveDev {
		cfg.Server.DevMode = true
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	logger, err := newLogger(cfg.Server.DevMode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	tables, err := config.LoadTables(cfg.Tables.Path)
	if err != nil {
		return fmt.Errorf("failed to load mapping tables: %w", err)
	}

	srv, err := server.NewServer(cfg, tables, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Server.Port))
		errCh <- srv.Run(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		return nil
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	dept, ok := model.ParseDepartment(convertDept)
	if !ok {
		return fmt.Errorf("unknown department %q (want radiology or cardiology)", convertDept)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tables, err := config.LoadTables(cfg.Tables.Path)
	if err != nil {
		return fmt.Errorf("failed to load mapping tables: %w", err)
	}

	inputs := make([]converter.Input, 0, len(args))
	for _, name := range args {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		inputs = append(inputs, converter.Input{Name: name, Data: data})
	}

	result, err := converter.Convert(dept, inputs, tables)
	if err != nil {
		return fmt.Errorf("conversion failed (%s): %w", converter.ErrorKind(err), err)
	}

	output := convertOutput
	if output == "" {
		switch dept {
		case model.DepartmentRadiology:
			output = "RadCall_import.csv"
		default:
			output = "OnCall_Import_Cardiology.csv"
		}
	}

	if err := os.WriteFile(output, result.CSV, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Printf("wrote %s: %d records for %s %d\n", output, result.Records, result.Month, result.Year)

	if convertXLSX {
		xlsxPath := strings.TrimSuffix(output, filepath.Ext(output)) + ".xlsx"
		if err := os.WriteFile(xlsxPath, result.Workbook, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", xlsxPath, err)
		}
		fmt.Printf("wrote %s\n", xlsxPath)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	return nil
}
