/*
Package operation executes a photosort plan against the filesystem.

	+-----------+      +---------------------+      +----------------+
	|   Plan    | ---> |  mkdirOperation     | ---> | copyOperation  |
	| (pkg/plan)|      | (ensure date dirs)  |      | (copy files)   |
	+-----------+      +---------------------+      +----------------+

🎯 Purpose:
- Materializes the plan's directory set (create-directories)
- Copies each planned file to its destination (copy-files)
- Runs operations strictly in sequence via Runner

🔄 Flow:
1. Runner executes create-directories, then copy-files
2. Each step skips work that is already done (existing directory or
   destination file), which makes re-runs idempotent
3. Dry-run mode logs every intention but performs no mutation

📝 Design Philosophy:
The destination tree itself is the only persisted state. A failed or
interrupted run leaves partial progress in place on purpose; the recovery
path is simply running the tool again and letting the exists-checks skip
completed work. There are no retries, no rollback, and no copy
verification beyond the existence gate.
*/
package operation
