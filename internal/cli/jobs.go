package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
	mongostore "trivia-quiz-service/internal/infra/mongo"
	"trivia-quiz-service/internal/infra/postgres"
	"trivia-quiz-service/internal/jobs"
	"trivia-quiz-service/internal/logging"
	"trivia-quiz-service/internal/metrics"
	transport "trivia-quiz-service/internal/transport/http"
)

// NewJobsCmd groups the job-board backend and its command-line client.
func NewJobsCmd(configPath, port *string) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Job-board REST backend and client",
	}
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "jobs API base URL (default from config)")

	client := func() (*jobs.Client, error) {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		if baseURL == "" {
			baseURL = cfg.Jobs.BaseURL
		}
		return jobs.NewClient(baseURL, 10*time.Second), nil
	}

	cmd.AddCommand(newJobsServeCmd(configPath, port))
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List job postings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			list, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			job, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), job)
		},
	})
	cmd.AddCommand(newJobsCreateCmd(client))
	cmd.AddCommand(newJobsUpdateCmd(client))
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			if err := c.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})
	return cmd
}

type jobFlags struct {
	title, jobType, description, location, salary string
	companyName, companyDescription               string
	contactEmail, contactPhone                    string
}

func (f *jobFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "job title")
	fs.StringVar(&f.jobType, "type", "", "Full-Time, Part-Time, Remote or Internship")
	fs.StringVar(&f.description, "description", "", "job description")
	fs.StringVar(&f.location, "location", "", "job location")
	fs.StringVar(&f.salary, "salary", "", "salary range")
	fs.StringVar(&f.companyName, "company-name", "", "company name")
	fs.StringVar(&f.companyDescription, "company-description", "", "company description")
	fs.StringVar(&f.contactEmail, "contact-email", "", "company contact email")
	fs.StringVar(&f.contactPhone, "contact-phone", "", "company contact phone")
}

func (f *jobFlags) job() domain.Job {
	return domain.Job{
		Title:       f.title,
		Type:        f.jobType,
		Description: f.description,
		Location:    f.location,
		Salary:      f.salary,
		Company: domain.Company{
			Name:         f.companyName,
			Description:  f.companyDescription,
			ContactEmail: f.contactEmail,
			ContactPhone: f.contactPhone,
		},
	}
}

// patch includes only the flags given on the command line.
func (f *jobFlags) patch(fs *pflag.FlagSet) domain.JobPatch {
	opt := func(name, v string) *string {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}
	p := domain.JobPatch{
		Title:       opt("title", f.title),
		Type:        opt("type", f.jobType),
		Description: opt("description", f.description),
		Location:    opt("location", f.location),
		Salary:      opt("salary", f.salary),
	}
	company := domain.CompanyPatch{
		Name:         opt("company-name", f.companyName),
		Description:  opt("company-description", f.companyDescription),
		ContactEmail: opt("contact-email", f.contactEmail),
		ContactPhone: opt("contact-phone", f.contactPhone),
	}
	if company != (domain.CompanyPatch{}) {
		p.Company = &company
	}
	return p
}

func newJobsCreateCmd(client func() (*jobs.Client, error)) *cobra.Command {
	var flags jobFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a job posting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			job, err := c.Create(cmd.Context(), flags.job())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), job)
		},
	}
	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newJobsUpdateCmd(client func() (*jobs.Client, error)) *cobra.Command {
	var flags jobFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			job, err := c.Update(cmd.Context(), args[0], flags.patch(cmd.Flags()))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), job)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newJobsServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the job-board REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runJobsServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File, cfg.Debug())
	if err != nil {
		return err
	}
	defer logger.Sync()

	repo, closers, err := openJobStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	metrics.Init()
	server := &http.Server{
		Addr:         ":" + pickPort(portFlag, cfg.Jobs.Port, "3000"),
		Handler:      transport.NewJobsRouter(app.NewJobService(repo), logger.Named("jobs")),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return serve(ctx, server, logger, closers)
}

func openJobStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (app.JobRepository, []func() error, error) {
	switch cfg.Jobs.Store {
	case "postgres":
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		closePool := func() error {
			pool.Close()
			return nil
		}
		return postgres.NewJobStore(pool), []func() error{closePool}, nil
	case "mongo":
		client, db, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() error {
			return client.Disconnect(context.Background())
		}
		return mongostore.NewJobStore(db), []func() error{disconnect}, nil
	case "memory", "":
		return memory.NewJobStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown jobs store %q", cfg.Jobs.Store)
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
