// Package config provides configuration parsing for Wayfind projects.
//
// The configuration is stored in wayfind.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "travelapp",
//	  "routes": {
//	    "dir": "app/screens"
//	  },
//	  "fallback": "not-found",
//	  "links": {
//	    "schemes": ["travelapp"],
//	    "domains": ["links.travelapp.example"],
//	    "appId": "TEAMID.com.example.travelapp",
//	    "package": "com.example.travelapp",
//	    "fingerprints": ["AA:BB:..."],
//	    "publish": {
//	      "bucket": "links-travelapp-example",
//	      "prefix": ""
//	    }
//	  }
//	}
//
// Projects that keep their navigation graph in a manifest set
// routes.manifest instead of routes.dir.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Routes dir:", cfg.RoutesPath())
package config
