/*
Package config manages configuration parsing and validation for photosort.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Holds the immutable run configuration (source, destination, allowlist,
  ignore patterns, dry-run, verbose)
- Loads optional config files in YAML or HCL
- Normalizes the extension allowlist and applies defaults

🔄 Flow:
1. Reads configuration from an optional file
2. Command-line flags are layered on top by the caller
3. Validate normalizes values and fills in defaults
4. Provides the validated config to the planner and executor

📝 Design Philosophy:
The config file only supplies defaults; flags always win. Parsing and
validation are deliberately separate so a partial file (say, just an
allowlist) is valid on its own.
*/
package config
