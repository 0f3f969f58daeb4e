// Command authorlink resolves book contributors against a name
// authority service and maintains the local contributor database.
package main
