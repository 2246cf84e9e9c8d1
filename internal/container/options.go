package container

// Options holds the process-level settings, bound by humacli for the server
// and from the environment for the consumer. Limiter settings come from
// their own environment surface, see config_env.go.
type Options struct {
	Port          int    `default:"8888"           help:"Port to listen on"                              short:"p"`
	RedisAddr     string `default:"localhost:6379" help:"Redis server address"                           short:"r"`
	PostgresDSN   string `default:""               help:"Postgres DSN for the deny-event store"`
	StatsBackend  string `default:"memory"         help:"Stats sink backend (memory or redis)"`
	PublishEvents bool   `default:"true"           help:"Publish deny events to the Redis stream"`
	LogFormat     string `default:"console"        help:"Log format (console or json)"`
}
