package buildinfo

var (
	Service = "pickroute"
	Version = "dev"
	Commit  = ""
	BuiltAt = ""
)

func Info() map[string]string {
	return map[string]string{
		"service": Service,
		"version": Version,
		"commit":  Commit,
		"builtAt": BuiltAt,
	}
}
