package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eringen/blogshell"
)

var importCmd = &cobra.Command{
	Use:   "import <fixtures-dir>",
	Short: "Copy fixture posts into the content database",
	Long: `Import reads <fixtures-dir>/posts and upserts every post as a published record
for --tenant. Re-importing the same slug updates the existing record.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.String("tenant", "", "organization id to import into (default $BLOG_TENANT_ID)")
	f.String("database-driver", "mysql", "database driver: mysql, postgres or sqlite")
	f.String("database-dsn", "", "database DSN")
	_ = v.BindPFlag("import_tenant", f.Lookup("tenant"))
	_ = v.BindPFlag("import_driver", f.Lookup("database-driver"))
	_ = v.BindPFlag("import_dsn", f.Lookup("database-dsn"))
}

func runImport(cmd *cobra.Command, args []string) error {
	tenant := v.GetString("import_tenant")
	if tenant == "" {
		tenant = blogshell.NewResolver(os.Getenv, nil).TenantID()
	}
	if tenant == "" {
		return errors.New("import: --tenant or " + blogshell.EnvTenantID + " is required")
	}

	driver, dsn, maxConns := v.GetString("import_driver"), v.GetString("import_dsn"), 4
	if dsn == "" {
		driver, dsn = v.GetString("database_driver"), v.GetString("database_dsn")
	}
	if dsn == "" && blogshell.HasMySQLEnv(os.Getenv) {
		m, err := blogshell.MySQLFromEnv(os.Getenv)
		if err != nil {
			return err
		}
		driver, dsn, maxConns = blogshell.DriverMySQL, m.DSN, m.MaxConns
	}
	if dsn == "" {
		return errors.New("import: --database-dsn is required")
	}

	store, err := blogshell.OpenStore(driver, dsn, maxConns)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := blogshell.NewFixtureSource(args[0], nil).Records()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	for _, rec := range records {
		rec.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(tenant+"/"+rec.Slug)).String()
		rec.OrganizationID = tenant
		rec.Status = blogshell.StatusPublished
		if _, err := store.SavePost(ctx, rec); err != nil {
			return fmt.Errorf("import %s: %w", rec.Slug, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  imported %s\n", rec.Slug)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d posts imported for tenant %s\n", len(records), tenant)
	return nil
}
