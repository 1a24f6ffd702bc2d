/* Package push is a multi-typed stack machine whose programs are data.

A Push program is a tree of Code: atoms, which are instructions or literals,
and blocks of further code. Running a program means pushing it onto the exec
stack and stepping until that stack is empty; a block steps by pushing its
items back in order, a literal by pushing its value onto the stack of its
kind, an instruction by acting on whatever stacks it names.

Every stack is typed, and every instruction declares how many items of which
kinds it needs. An instruction that finds its inputs missing does nothing at
all; the same goes for one that declines, say to divide by zero. So there is
no such thing as a type error or stack underflow: any tree built from the
registered instructions is a program that runs, which is what makes it safe
for a genetic search to cut, splice and regenerate programs at random.

The pieces:

  - Registry holds an instruction set, with generation weights and program
    size limits; BaseInstructions is the usual integer, float, boolean, name,
    code and exec set.
  - Context holds the stacks, the name bindings and an entropy source of one
    execution; Run executes within a step budget and a stack depth ceiling.
  - Registry.Generate builds random programs, Mutate and Crossover derive
    children from parents.
  - Registry.Parse and Code.String read and write programs as text, such as
    ( 2 3 INTEGER.PRODUCT ( true ) CODE.QUOTE ); the wire package does the
    same in CBOR.
  - Batch runs many contexts at once, such as the fitness cases of a
    population; the config package loads all of the above from TOML.

Hosts add their own kinds with NewKind and WithKinds, and their own
instructions as plain Instruction values.
*/
package push
