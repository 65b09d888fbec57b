// Package roster imports people and their duty histories from a YAML file.
//
// A roster looks like:
//
//	people:
//	  - name: John Doe
//	    duties:
//	      - rank: CPT
//	        title: PILOT
//	        start: 2020-01-01
//	      - rank: MAJ
//	        title: COMMANDER
//	        start: 2021-01-01
//
// Entries are dispatched through the mediator as CreatePerson and
// CreateAstronautDuty commands, so a roster goes through the same
// validation and duty transition rules as the REST API. Loading the same
// roster twice is a no-op.
package roster
