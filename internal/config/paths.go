package config

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "nifeed.toml"
