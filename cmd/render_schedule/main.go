package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/Freeeeeet/horario_bot/internal/app"
	"github.com/Freeeeeet/horario_bot/internal/backend"
	"github.com/Freeeeeet/horario_bot/internal/export"
	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/service"
)

// Context общие зависимости команд
type Context struct {
	Schedules []model.Schedule
	Service   *service.ScheduleService
	Logger    *zap.Logger
}

// RenderCmd рисует один вариант расписания
type RenderCmd struct {
	Index  int    `help:"Schedule number, starting at 1." default:"1"`
	Format string `help:"Output format." enum:"png,text" default:"text"`
	Out    string `help:"Output file for PNG." type:"path" default:"horario.png"`
}

func (c *RenderCmd) Run(ctx *Context) error {
	if c.Index < 1 || c.Index > len(ctx.Schedules) {
		return fmt.Errorf("schedule %d out of range, file has %d", c.Index, len(ctx.Schedules))
	}

	s := ctx.Schedules[c.Index-1]
	if c.Format == "text" {
		fmt.Println(export.Text(ctx.Service.Layout(s)))
		return nil
	}

	rendered, err := ctx.Service.Render(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Out, rendered.PNG, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.Out, err)
	}
	ctx.Logger.Info("Schedule saved", zap.String("file", c.Out), zap.Int("bytes", len(rendered.PNG)))
	return nil
}

// AllCmd рисует все варианты файла в каталог
type AllCmd struct {
	Dir string `help:"Output directory." type:"path" default:"."`
}

func (c *AllCmd) Run(ctx *Context) error {
	rendered, err := ctx.Service.RenderMany(context.Background(), ctx.Schedules)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", c.Dir, err)
	}

	for i, r := range rendered {
		name := filepath.Join(c.Dir, fmt.Sprintf("horario_%02d.png", i+1))
		if err := os.WriteFile(name, r.PNG, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	ctx.Logger.Info("Schedules saved", zap.String("dir", c.Dir), zap.Int("count", len(rendered)))
	return nil
}

// ListCmd выводит краткую сводку по вариантам
type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	for i, s := range ctx.Schedules {
		fmt.Printf("%3d. %d courses, popularity %.4f, credits %.2f\n", i+1, len(s.Courses), s.Popularity, s.TotalCredits)
	}
	return nil
}

var CLI struct {
	File       string `help:"Generator response JSON file." short:"f" type:"existingfile" required:""`
	TeacherURL string `help:"Teacher profile base URL." default:"/profesor/"`

	Render RenderCmd `cmd:"" help:"Render a schedule as PNG or text." default:"1"`
	All    AllCmd    `cmd:"" help:"Render every schedule in the file to PNG."`
	List   ListCmd   `cmd:"" help:"List schedules in the file."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("render_schedule"),
		kong.Description("Render generated university schedules as a weekly grid"),
		kong.UsageOnError(),
	)

	logger := app.StderrFallback()
	defer logger.Sync()

	data, err := os.ReadFile(CLI.File)
	if err != nil {
		logger.Fatal("Failed to read schedules file", zap.String("file", CLI.File), zap.Error(err))
	}

	schedules, err := backend.DecodeSchedules(data)
	if err != nil {
		logger.Fatal("Failed to decode schedules", zap.Error(err))
	}

	// Генератор и хранилища не нужны: команды только рисуют
	svc := service.NewScheduleService(nil, nil, nil, nil, CLI.TeacherURL, logger)

	if err := ctx.Run(&Context{Schedules: schedules, Service: svc, Logger: logger}); err != nil {
		logger.Fatal("Command failed", zap.Error(err))
	}
}
