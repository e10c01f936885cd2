package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/salesgrowth-service/migrations"
)

var (
	projectID  = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "salesgrowth-db"), "Spanner database ID")
	migrateDir = flag.String("migrations", "", "Directory containing migration SQL files (default: the embedded schema)")
)

func main() {
	flag.Parse()

	ctx := context.Background()

	if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" {
		log.Printf("Using Spanner emulator at %s", emulatorHost)
	}

	if err := run(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully!")
}

// migrator holds the admin clients and resource names for one database.
type migrator struct {
	instances    *instance.InstanceAdminClient
	databases    *database.DatabaseAdminClient
	projectPath  string
	instancePath string
	databasePath string
}

func run(ctx context.Context) error {
	all, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	instances, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instances.Close()

	databases, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer databases.Close()

	m := &migrator{
		instances:    instances,
		databases:    databases,
		projectPath:  fmt.Sprintf("projects/%s", *projectID),
		instancePath: fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID),
		databasePath: fmt.Sprintf("projects/%s/instances/%s/databases/%s", *projectID, *instanceID, *databaseID),
	}

	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	return m.apply(ctx, all)
}

func loadMigrations() ([]migrations.Migration, error) {
	if *migrateDir == "" {
		return migrations.All()
	}
	return migrations.Load(os.DirFS(*migrateDir))
}

func (m *migrator) ensureInstance(ctx context.Context) error {
	log.Printf("Ensuring instance %s exists...", *instanceID)

	_, err := m.instances.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.instancePath})
	if err == nil {
		log.Println("Instance already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		log.Printf("Warning: unexpected error checking instance: %v", err)
		return nil
	}

	log.Println("Creating instance...")
	op, err := m.instances.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     m.projectPath,
		InstanceId: *instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("%s/instanceConfigs/emulator-config", m.projectPath),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		log.Println("Instance already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}

	// The emulator may complete the operation before Wait is called.
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Printf("Warning during instance creation: %v", err)
	}

	log.Println("Instance created successfully")
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context) error {
	log.Printf("Ensuring database %s exists...", *databaseID)

	_, err := m.databases.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.databasePath})
	if err == nil {
		log.Println("Database already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			log.Printf("Proceeding with database (emulator mode): %v", err)
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	log.Println("Creating database...")
	op, err := m.databases.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.instancePath,
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", *databaseID),
	})
	if status.Code(err) == codes.AlreadyExists {
		log.Println("Database already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}

	log.Println("Database created successfully")
	return nil
}

// apply runs every migration statement whose table or index does not exist
// yet, so the command can be rerun against a migrated database.
func (m *migrator) apply(ctx context.Context, all []migrations.Migration) error {
	existing, err := m.existingObjects(ctx)
	if err != nil {
		return err
	}

	for _, migration := range all {
		pending := pendingStatements(migration.Statements, existing)
		if len(pending) == 0 {
			log.Printf("Skipping %s (already applied)", migration.Name)
			continue
		}

		log.Printf("Applying %s (%d statements)...", migration.Name, len(pending))
		op, err := m.databases.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.databasePath,
			Statements: pending,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", migration.Name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", migration.Name, err)
		}

		for _, stmt := range pending {
			if name := migrations.ObjectName(stmt); name != "" {
				existing[name] = true
			}
		}
		log.Printf("Successfully applied %s", migration.Name)
	}

	return nil
}

func (m *migrator) existingObjects(ctx context.Context) (map[string]bool, error) {
	resp, err := m.databases.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: m.databasePath})
	if err != nil {
		return nil, fmt.Errorf("failed to read current schema: %w", err)
	}

	existing := make(map[string]bool, len(resp.GetStatements()))
	for _, stmt := range resp.GetStatements() {
		if name := migrations.ObjectName(stmt); name != "" {
			existing[name] = true
		}
	}
	return existing, nil
}

func pendingStatements(statements []string, existing map[string]bool) []string {
	var pending []string
	for _, stmt := range statements {
		if name := migrations.ObjectName(stmt); name != "" && existing[name] {
			continue
		}
		pending = append(pending, stmt)
	}
	return pending
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
