/*
Package cliparse parses server configuration from CLI flags with
environment variable fallback.

# Settings

  - -p / PORT: server port (default 3419)
  - -d / DATABASE_URL: database connection string; defaults to a local
    sqlite file, required for postgres
  - -t / DATABASE_TYPE: "sqlite" (default) or "postgres"
  - -base-url / BASE_URL: public base URL used in join links and QR codes

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])

DriverName maps the database type to the registered sql driver
("sqlite" for modernc.org/sqlite, "postgres" for lib/pq).
*/
package cliparse
