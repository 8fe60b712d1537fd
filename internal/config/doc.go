// Package config handles the todo configuration file and the default
// locations of the config and data files.
//
// The config file is TOML with a single optional key:
//
//	data_path = "/absolute/path/to/task.list"
//
// When data_path is unset the task list lives in the user data directory.
//
// Config locations:
// - Windows: %APPDATA%\todo.config
// - macOS: ~/Library/Application Support/todo.config
// - Linux/BSD: $XDG_CONFIG_HOME/todo.config or ~/.config/todo.config
//
// Default data locations:
// - Windows: %APPDATA%\task.list
// - macOS: ~/Library/Application Support/task.list
// - Linux/BSD: $XDG_DATA_HOME/task.list or ~/.local/share/task.list
package config
